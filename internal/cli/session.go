package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenesvg/pkg/session"
)

// sessionCommand creates the session command for the remembered scale.
func (c *CLI) sessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show or reset the remembered export scale",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newSessionStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sess, err := session.LoadOrNew(ctx, store, session.DefaultID)
			if err != nil {
				return err
			}
			printKeyValue("Scale", sess.Scale.String())
			printKeyValue("Exports", fmt.Sprintf("%d", sess.Exports))
			if sess.LastScene != "" {
				printKeyValue("Last scene", sess.LastScene)
				printKeyValue("Updated", sess.UpdatedAt.Format(time.DateTime))
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the remembered scale",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newSessionStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(ctx, session.DefaultID); err != nil {
				return err
			}
			if err := store.Cleanup(ctx); err != nil {
				printWarning("Cleanup failed: %v", err)
			}
			printSuccess("Session reset")
			return nil
		},
	})

	return cmd
}
