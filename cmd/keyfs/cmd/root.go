package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keyfs/keyfs"
)

var rootCmd = &cobra.Command{
	Use:   "keyfs",
	Short: "Filesystem-mapped key/value document store CLI",
	Long:  "CLI for inspecting and managing keyfs stores, with optional OCI registry snapshots.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/keyfs/config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "storage root directory (default: ~/.local/share/keyfs)")
	rootCmd.PersistentFlags().String("extension", "", "data-file extension appended to leaf files")
	rootCmd.PersistentFlags().String("remote", "", "OCI image ref for snapshot push/pull")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("extension", rootCmd.PersistentFlags().Lookup("extension"))
	viper.BindPFlag("remote", rootCmd.PersistentFlags().Lookup("remote"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("KEYFS")
	viper.AutomaticEnv()
	viper.SetDefault("root", defaultRoot())

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keyfs")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "keyfs")
	}
	return ".keyfs"
}

func defaultRoot() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "keyfs", "store")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "keyfs", "store")
	}
	return ".keyfs"
}

func openStore() (*keyfs.Store, error) {
	opts := []keyfs.Option{
		keyfs.WithExtension(viper.GetString("extension")),
	}
	if remote := viper.GetString("remote"); remote != "" {
		opts = append(opts, keyfs.WithRemote(remote))
	}
	return keyfs.Open(viper.GetString("root"), opts...)
}
