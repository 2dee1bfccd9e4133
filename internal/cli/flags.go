package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lmtk/internal/app"
)

// sourceFlags are shared by every command that reads schemas.
type sourceFlags struct {
	NoValidate bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.NoValidate, "no-validate", false, "Skip schema validation")
}

func (f sourceFlags) options() app.SourceOptions {
	return app.SourceOptions{
		Validate:       !f.NoValidate,
		ResolveImports: viper.GetBool("resolve_imports"),
	}
}

func newAppService() app.Service {
	return app.NewService()
}

// commandContext carries the global logger so core code logging through
// log.Ctx picks up the configured level and writer.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return log.Logger.WithContext(ctx)
}

func noColor() bool {
	return viper.GetBool("no_color")
}

// resolveString returns the flag value when the flag was given or no
// config value exists, and the config value otherwise.
func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if flagChanged(cmd, flagName) || !viper.IsSet(key) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if flagChanged(cmd, flagName) || !viper.IsSet(key) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if flagChanged(cmd, flagName) || !viper.IsSet(key) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
