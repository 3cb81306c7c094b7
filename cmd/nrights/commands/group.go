package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"naturalrights/internal/services/rights"
)

func groupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create groups and manage their members",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a group you administer",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			id, err := c.CreateGroup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Group: %s\n", id)
			return nil
		},
	})

	for _, m := range []struct {
		use, short, done string
		run              func(c *rights.Client, ctx context.Context, groupID, userID string) error
	}{
		{"add-reader", "Add a member who can read what the group reads", "Reader added", (*rights.Client).AddReaderToGroup},
		{"add-signer", "Let a member sign for the group", "Signer added", (*rights.Client).AddSignerToGroup},
		{"add-admin", "Make a member a group admin", "Admin added", (*rights.Client).AddAdminToGroup},
		{"remove-admin", "Take admin rights from a member", "Admin removed", (*rights.Client).RemoveAdminFromGroup},
		{"remove-member", "Remove a member from the group", "Member removed", (*rights.Client).RemoveMemberFromGroup},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   m.use + " [group-id] [user-id]",
			Short: m.short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := wire.RegisteredClient(passphrase)
				if err != nil {
					return err
				}
				if err := m.run(c, cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Println(m.done)
				return nil
			},
		})
	}

	return cmd
}
