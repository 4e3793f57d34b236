package main

import (
	"fmt"

	"github.com/ferraz/discovery-go/internal/auth"
	"github.com/ferraz/discovery-go/pkg/client"
	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Store the API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeySet,
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key (redacted)",
	RunE:  runKeyShow,
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE:  runKeyClear,
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}

func runKeySet(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		render.RenderError(err.Error())
		return err
	}
	defer st.Close()

	key := args[0]
	if err := auth.SaveKey(st, key); err != nil {
		render.RenderError(err.Error())
		return err
	}

	// Push the key to the backend so it is live immediately. Failure here
	// is not fatal: the key travels with every request anyway.
	cli, err := client.New(client.Config{
		BaseURL:        serverURL(),
		APIKey:         key,
		TimeoutSeconds: cfg.RequestTimeoutSeconds,
		Logger:         logger,
	})
	if err == nil {
		defer cli.Close()
		if err := cli.Configure(key); err != nil {
			logger.Warnf("backend configure failed: %v", err)
			render.RenderInfo("Key saved locally; backend could not be reached")
			return nil
		}
	}

	render.RenderSuccess("API key saved")
	return nil
}

func runKeyShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		render.RenderError(err.Error())
		return err
	}
	defer st.Close()

	key, err := auth.LoadKey(st)
	if err != nil {
		render.RenderInfo("No API key configured")
		return nil
	}
	fmt.Println(auth.Redact(key))
	return nil
}

func runKeyClear(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		render.RenderError(err.Error())
		return err
	}
	defer st.Close()

	if err := auth.ClearKey(st); err != nil {
		render.RenderError(err.Error())
		return err
	}

	// Best effort: forget the key server-side too.
	cli, err := client.New(client.Config{
		BaseURL:        serverURL(),
		TimeoutSeconds: cfg.RequestTimeoutSeconds,
		Logger:         logger,
	})
	if err == nil {
		defer cli.Close()
		if err := cli.ResetAPIKey(); err != nil {
			logger.Warnf("backend key reset failed: %v", err)
		}
	}

	render.RenderSuccess("API key removed")
	return nil
}
