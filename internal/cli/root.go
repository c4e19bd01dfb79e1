package cli

import (
	stdcontext "context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"

	"github.com/example/ramtop/internal/config"
	"github.com/example/ramtop/internal/proc"
	"github.com/example/ramtop/internal/session"
)

func NewRootCmd() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *appContext) {
	var configFile string

	app := &appContext{
		inspector: proc.NewSampler(),
		sleep:     time.Sleep,
	}

	root := &cobra.Command{
		Use:   "ramtop",
		Short: "Inspect and reclaim memory from the host's hungriest processes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			app.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().
		StringVarP(&configFile, "config", "c", "", "Path to a ramtop config file")

	root.AddCommand(newTopCmd(app))
	root.AddCommand(newKillCmd(app))
	root.AddCommand(newTuiCmd(app))

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, app
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.SetContext(ctx)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// memoryInspector is the slice of proc.Sampler the commands rely on; tests
// substitute fakes.
type memoryInspector interface {
	TopByResident(n int) ([]proc.ProcessSample, error)
	TotalResidentMB() (uint64, error)
	AvailableMB() (uint64, error)
	Describe(pid int32) string
}

// appContext carries shared state between commands: the loaded config, the
// host inspector, and the lazily opened session with its accounting.
type appContext struct {
	cfg       config.Config
	inspector memoryInspector

	// terminate is resolved lazily from the config; tests inject a fake.
	terminate func(pid int32) bool
	sleep     func(time.Duration)

	mu       sync.Mutex
	session  *session.Session
	beforeMB uint64
	records  []session.TerminationRecord
}

// ensureSession opens the per-run session on first use, recording the
// startup banner and the initial memory baseline.
func (a *appContext) ensureSession() (*session.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil {
		return a.session, nil
	}

	sess, err := session.Open(a.cfg.LogDir)
	if err != nil {
		return nil, err
	}
	before, err := a.inspector.TotalResidentMB()
	if err != nil {
		sess.Close()
		return nil, err
	}

	a.session = sess
	a.beforeMB = before
	sess.Logf("=== ramtop session started ===")
	if user := currentUser(); user != "" {
		sess.Logf("User: %s", user)
	}
	sess.Logf("Initial RAM usage: %d MB", before)
	return sess, nil
}

func (a *appContext) closeSession() {
	a.mu.Lock()
	sess := a.session
	a.mu.Unlock()
	if sess != nil {
		_ = sess.Close()
	}
}

func currentUser() string {
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ""
	}
	name, err := self.Username()
	if err != nil {
		return ""
	}
	return name
}
