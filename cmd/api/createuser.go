package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

func createUserCmd(v *viper.Viper) *cobra.Command {
	var name, email, password, role string

	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create a back office user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.ToLower(strings.TrimSpace(email))
			if name == "" || email == "" || len(password) < 8 {
				return errors.New("--name, --email and a --password of at least 8 characters are required")
			}
			if !validators.EmailDomainResolves(cmd.Context(), email) {
				return fmt.Errorf("email domain of %q does not resolve", email)
			}

			cfg, log, err := bootstrap(v)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			user := models.User{
				Name:         strings.TrimSpace(name),
				Email:        email,
				PasswordHash: string(hashed),
				Role:         role,
				Active:       true,
			}
			if err := db.WithContext(cmd.Context()).Create(&user).Error; err != nil {
				if httperr.IsUniqueViolation(err) {
					return fmt.Errorf("a user with email %q already exists", email)
				}
				return err
			}

			log.Info("user created", zap.Uint("id", user.ID), zap.String("email", user.Email))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", "admin", "admin or staff")
	return cmd
}
