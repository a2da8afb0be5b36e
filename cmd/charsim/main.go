package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcore/character"
	"github.com/milk9111/charcore/config"
	"github.com/milk9111/charcore/fsm"
	"github.com/milk9111/charcore/prefabs"
	"github.com/milk9111/charcore/script"
)

// tracer logs every state change with the tick it happened on.
type tracer struct {
	logger *log.Logger
	tick   *int
	enters int
}

func (t *tracer) OnExit(k fsm.Kind) {
	t.logger.Printf("charsim: tick=%d exit %s", *t.tick, k)
}

func (t *tracer) OnEnter(k fsm.Kind) {
	t.enters++
	t.logger.Printf("charsim: tick=%d enter %s", *t.tick, k)
}

type result struct {
	Ticks    int
	State    string
	Position cp.Vector
	Enters   int
}

func run(opts config.Options, logger *log.Logger) (result, error) {
	prefabs.SetDir(opts.PrefabDir)

	char, err := character.Load(opts.Character, character.Options{GroundProbe: opts.GroundProbe, Logger: logger})
	if err != nil {
		return result{}, err
	}
	runner, err := script.Load(opts.Scenario, logger)
	if err != nil {
		return result{}, err
	}

	ticks := opts.Ticks
	if ticks == 0 {
		n, ok := runner.Ticks()
		if !ok {
			return result{}, fmt.Errorf("charsim: scenario %s sets no ticks and CHARCORE_TICKS is 0", runner.Name())
		}
		ticks = n
	}

	tick := 0
	tr := &tracer{logger: logger, tick: &tick}
	char.Machine.SetObserver(tr)
	char.Start()
	defer char.Stop()

	dt := char.FixedDT()
	for ; tick < ticks && !runner.Done(); tick++ {
		if err := runner.Step(char); err != nil {
			return result{}, err
		}
		char.Step(dt)
		if opts.Debug {
			v := char.Velocity()
			p := char.Position()
			logger.Printf("charsim: tick=%d state=%s pos=(%.3f, %.3f) vel=(%.3f, %.3f) grounded=%t",
				tick, char.StateName(), p.X, p.Y, v.X, v.Y, char.Grounded())
		}
	}

	return result{
		Ticks:    tick,
		State:    char.StateName(),
		Position: char.Position(),
		Enters:   tr.enters,
	}, nil
}

func main() {
	debug := flag.Bool("debug", false, "log every tick")
	flag.Parse()

	opts, err := config.LoadOptions()
	if err != nil {
		log.Fatal(err)
	}
	opts.Debug = opts.Debug || *debug

	res, err := run(opts, log.Default())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("charsim: done after %d ticks: state=%s pos=(%.3f, %.3f) transitions=%d",
		res.Ticks, res.State, res.Position.X, res.Position.Y, res.Enters)
}
