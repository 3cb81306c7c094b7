package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"naturalrights/internal/domain/types"
)

func docCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Create documents and manage who may read or sign them",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a document you own",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			id, _, err := c.CreateDocument(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Document: %s\n", id)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rotate [document-id]",
		Short: "Replace the document encryption key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			keys, err := c.UpdateDocumentEncryption(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("New document key: %s\n", keys.PubKey)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "encrypt [document-id] [text...]",
		Short: "Encrypt texts to the document key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			cts, err := c.EncryptDocumentTexts(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(cts, "\n"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decrypt [document-id] [ciphertext...]",
		Short: "Decrypt texts encrypted to the document key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			pts, err := c.DecryptDocumentTexts(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(pts, "\n"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sign [document-id] [text...]",
		Short: "Have the server sign texts with the document key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			sigs, err := c.SignDocumentTexts(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(sigs, "\n"))
			return nil
		},
	})

	var signer bool
	grant := &cobra.Command{
		Use:   "grant [document-id] [user|group] [id]",
		Short: "Grant read access, or signing with --sign",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := grantKind(args[1])
			if err != nil {
				return err
			}
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			if signer {
				err = c.GrantSignAccess(cmd.Context(), args[0], kind, args[2])
			} else {
				err = c.GrantReadAccess(cmd.Context(), args[0], kind, args[2])
			}
			if err != nil {
				return err
			}
			fmt.Println("Access granted")
			return nil
		},
	}
	grant.Flags().BoolVar(&signer, "sign", false, "grant signing instead of reading")
	cmd.AddCommand(grant)

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke [document-id] [user|group] [id]",
		Short: "Revoke a grant",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := grantKind(args[1])
			if err != nil {
				return err
			}
			c, err := wire.RegisteredClient(passphrase)
			if err != nil {
				return err
			}
			if err := c.RevokeAccess(cmd.Context(), args[0], kind, args[2]); err != nil {
				return err
			}
			fmt.Println("Access revoked")
			return nil
		},
	})

	return cmd
}

func grantKind(s string) (types.GrantKind, error) {
	k := types.GrantKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("grant kind must be user or group, got %q", s)
	}
	return k, nil
}
