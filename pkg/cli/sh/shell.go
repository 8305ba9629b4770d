package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"
	"github.com/fatih/color"

	"github.com/robotalks/uart.go/pkg/env"
	"github.com/robotalks/uart.go/pkg/sim"
	"github.com/robotalks/uart.go/pkg/sim/wave"
)

// Shell provides ishell backed interactive shell over a local bench.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell   *ishell.Shell
	Config  *sim.Config
	Env     *env.Config
	Session *Session
}

const shellKey = "$shell"

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&SendCmd,
		&StepCmd,
		&RunCmd,
		&BreakCmd,
		&ResetCmd,
		&StatusCmd,
		&StatsCmd,
		&WaveCmd,
		&ConfigCmd,
	}

	errColor   = color.New(color.FgRed, color.Bold)
	echoColor  = color.New(color.FgGreen)
	inputColor = color.New(color.FgCyan)
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *sim.Config, envConf *env.Config, rec *wave.Recorder) (*Shell, error) {
	period, err := conf.Period()
	if err != nil {
		return nil, err
	}
	session, err := NewSession(period, rec)
	if err != nil {
		return nil, err
	}
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:   ishell.New(),
		Config:  conf,
		Env:     envConf,
		Session: session,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("uart > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s, nil
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Output prints v as JSON in JSON mode, otherwise calls text.
func Output(c *ishell.Context, v interface{}, text func()) {
	if !ShellFrom(c).OutputJSON {
		text()
		return
	}
	out, err := json.Marshal(v)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println(string(out))
}

// PrintEvents prints events in color.
func PrintEvents(c *ishell.Context, events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventFramingError, sim.EventOverrun:
			c.Println(errColor.Sprint(ev.String()))
		case sim.EventEchoed:
			c.Println(echoColor.Sprint(ev.String()))
		default:
			c.Println(inputColor.Sprint(ev.String()))
		}
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Printf("period %d cycles/bit\n", s.Session.Bench.Period())
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	sim.SetupFlags()
	wave.SetupFlags()
	env.SetupFlags()
	flag.Parse()
	s, err := New(sim.NewConfig(), env.NewConfig(), wave.NewConfig().NewRecorder())
	if err != nil {
		log.Fatalln(err)
	}
	s.Run(flag.Args()...)
}

func argInt(c *ishell.Context, index int, name string, def int) (int, bool) {
	if len(c.Args) <= index {
		return def, true
	}
	var val int
	if _, err := fmt.Sscanf(c.Args[index], "%d", &val); err != nil || val < 0 {
		c.Err(fmt.Errorf("invalid %s: %s", name, c.Args[index]))
		return 0, false
	}
	return val, true
}
