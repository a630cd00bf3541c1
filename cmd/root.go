package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ifprefix/ifprefix/internal/config"
	"github.com/ifprefix/ifprefix/internal/event"
	"github.com/ifprefix/ifprefix/internal/link"
	"github.com/ifprefix/ifprefix/internal/lock"
	"github.com/ifprefix/ifprefix/internal/logger"
	"github.com/ifprefix/ifprefix/internal/netdev"
	"github.com/ifprefix/ifprefix/internal/prefix"
)

func NewRootCommand() *cobra.Command {
	var eventEnvFile string

	rootCmd := &cobra.Command{
		Use:   "ifprefix",
		Short: "Assign stable prefixed names to network interfaces",
		Long: "ifprefix is run by the device manager once per network device event. When the\n" +
			"kernel command line requests an interface name prefix, it gives the event\n" +
			"device a stable name under that prefix, records the name on disk for the OS\n" +
			"link-naming subsystem, and prints it on stdout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, eventEnvFile)
		},
	}
	rootCmd.Flags().StringVar(&eventEnvFile, "event-env", "", "file with KEY=VALUE pairs loaded into the environment before the event is read, for replaying events by hand")

	return rootCmd
}

func Execute() error {
	return NewRootCommand().Execute()
}

func run(cmd *cobra.Command, eventEnvFile string) error {
	if eventEnvFile != "" {
		if err := godotenv.Load(eventEnvFile); err != nil {
			logger.New("info").Error().Err(err).Str("file", eventEnvFile).Msg("Failed to load the event environment file")
			return err
		}
	}

	cfg, err := config.Load(config.DefaultConfigDir)
	if err != nil {
		logger.New("info").Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	log := logger.New(cfg.LogLevel())

	pfx, err := prefix.FromCmdline(cfg.CmdlinePath())
	if err != nil {
		log.Error().Err(err).Msg("Failed to obtain the prefix value")
		return err
	}
	if pfx == "" {
		log.Info().Msg("No prefix specified on the kernel command line")
		return nil
	}
	if !prefix.Valid(pfx) {
		log.Error().Str("prefix", pfx).Msg("Invalid prefix, must be alphabetic, shorter than 16 characters and not a well-known NIC naming prefix")
		return nil
	}

	if event.Virtual() {
		log.Debug().Str("devpath", event.Devpath()).Msg("Called for a virtual network device, ignoring")
		return nil
	}

	device := event.DeviceName()
	if link.NamedWithPrefix(device, pfx) {
		log.Debug().Str("device", device).Msg("Device already carries a prefixed name")
		fmt.Fprintln(cmd.OutOrStdout(), device)
		return nil
	}

	lk := lock.New(cfg.LockFile())
	defer lk.Close()

	name, err := link.EnsureName(netdev.NewNetlinkEnumerator(), lk, cfg.RecordsDir(), pfx, device, log)
	if err != nil {
		log.Error().Err(err).Str("device", device).Msg("Failed to ensure a stable name for the device")
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
