package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/scienceol/equivalents/cmd/api"
	"github.com/scienceol/equivalents/cmd/calc"
	"github.com/scienceol/equivalents/cmd/reagent"
	"github.com/scienceol/equivalents/internal/config"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	cobra.EnableTraverseRunHooks = true
	rootCtx := utils.SetupSignalContext()
	root := &cobra.Command{
		Use:                "equivalents",
		SilenceUsage:       true,
		Short:              "equivalents",
		Long:               "Equivalents - stoichiometric amounts for a reaction from a reagent catalog",
		PersistentPreRunE:  initGlobalResource,
		PersistentPostRunE: cleanGlobalResource,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.SetContext(rootCtx)
	root.AddCommand(api.NewWeb())
	root.AddCommand(api.NewMigrate())
	root.AddCommand(calc.New())
	root.AddCommand(reagent.New())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initGlobalResource(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found - using environment variables")
	}

	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.AutomaticEnv()

	conf := config.Global()
	if err := v.Unmarshal(conf); err != nil {
		return err
	}

	logger.Init(&logger.LogConfig{
		Path:     conf.Log.LogPath,
		LogLevel: conf.Log.LogLevel,
		ServiceEnv: logger.ServiceEnv{
			Platform: conf.Server.Platform,
			Service:  conf.Server.Service,
			Env:      conf.Server.Env,
		},
	})

	return nil
}

func cleanGlobalResource(_ *cobra.Command, _ []string) error {
	logger.Close()
	return nil
}
