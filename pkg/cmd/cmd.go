package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"

	"github.com/hashicorp/go-hclog"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sys/unix"
	"lab47.dev/boardindex/pkg/progress"
)

// LogOptions are accepted by every command.
type LogOptions struct {
	LogLevel string `long:"log-level" default:"info" description:"log level: trace, debug, info, warn, error"`
	Trace    bool   `long:"trace" description:"log in trace mode"`
	Quiet    bool   `short:"q" long:"quiet" description:"no progress bars"`
}

// Cmd adapts a func(context.Context, struct) error into a cli.Command.
// The struct's go-flags tags define the command's options.
type Cmd struct {
	syn, name string
	f         reflect.Value

	opts   reflect.Value
	log    LogOptions
	parser *flags.Parser
}

func New(name, syn string, f interface{}) *Cmd {
	rv := reflect.ValueOf(f)

	if rv.Kind() != reflect.Func {
		panic("must pass a function")
	}

	rt := rv.Type()

	if rt.NumIn() != 2 {
		panic("must provide two arguments only")
	}

	if rt.NumOut() != 1 {
		panic("must return one argument only")
	}

	in := rt.In(1)

	if in.Kind() != reflect.Struct {
		panic("argument must be a struct")
	}

	sv := reflect.New(in)

	parser := flags.NewNamedParser(name, flags.Default)
	parser.ShortDescription = syn
	parser.LongDescription = syn

	_, err := parser.AddGroup("Application Options", "", sv.Interface())
	if err != nil {
		panic(err)
	}

	c := &Cmd{
		syn:    syn,
		name:   name,
		f:      rv,
		opts:   sv,
		parser: parser,
	}

	_, err = parser.AddGroup("Logging Options", "", &c.log)
	if err != nil {
		panic(err)
	}

	return c
}

func (w *Cmd) Help() string {
	var buf bytes.Buffer
	w.parser.WriteHelp(&buf)
	return buf.String()
}

func (w *Cmd) Synopsis() string {
	return w.syn
}

// Logger returns the logger Run attached to ctx.
func Logger(ctx context.Context) hclog.Logger {
	return hclog.FromContext(ctx)
}

func (w *Cmd) logger() hclog.Logger {
	level := hclog.LevelFromString(w.log.LogLevel)
	if level == hclog.NoLevel {
		level = hclog.Info
	}

	if w.log.Trace {
		level = hclog.Trace
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "energia-index",
		Level:  level,
		Output: os.Stderr,
	})
}

func (w *Cmd) Run(args []string) int {
	_, err := w.parser.ParseArgs(args)
	if err != nil {
		return 1
	}

	L := w.logger()
	hclog.SetDefault(L)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cancelOnSignal(cancel, os.Interrupt, unix.SIGQUIT, unix.SIGTERM)

	ctx = hclog.WithContext(ctx, L)

	if !w.log.Quiet {
		ctx = progress.Open(ctx, os.Stderr)
	}

	rets := w.f.Call([]reflect.Value{reflect.ValueOf(ctx), w.opts.Elem()})

	if err, ok := rets[0].Interface().(error); ok {
		if err != nil {
			fmt.Fprintf(os.Stderr, "! Error: %+v\n", err)
			return 1
		}
	}

	return 0
}

func cancelOnSignal(cancel func(), signals ...os.Signal) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, signals...)

	go func() {
		for range c {
			cancel()
		}
	}()
}
