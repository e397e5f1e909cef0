package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"simplifytour/internal/services"
)

func newCreateSuperuserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a confirmed staff account with full permissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()

			svc := newAppServices(rt.db, rt.cfg, rt.log)
			user, err := svc.users.CreateSuperuser(cmd.Context(), email, password)
			if err != nil {
				var fe *services.FieldError
				if errors.As(err, &fe) {
					return fmt.Errorf("%s: %s", fe.Field, fe.Message)
				}
				return err
			}
			rt.log.Info("superuser ", user.Email, " created")
			return nil
		},
	}
	cmd.Flags().String("email", "", "Email address of the superuser")
	cmd.Flags().String("password", "", "Password of the superuser")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
