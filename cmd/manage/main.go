package main

import (
	"Newsroom/internal/api/config"
	"Newsroom/internal/pkg/audit"
	"Newsroom/internal/pkg/database"
	"Newsroom/internal/pkg/logger"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"Newsroom/internal/service"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "manage",
		Short:        "Newsroom management commands",
		SilenceUsage: true,
	}
	root.AddCommand(
		migrateCmd(),
		createCategoriesCmd(),
		seedSamplePostsCmd(),
		grantStaffPermissionsCmd(),
		assignAdminViewPermsCmd(),
		createSuperuserCmd(),
	)
	return root
}

// openDB loads configuration and connects, for commands that touch the database.
func openDB() (*gorm.DB, *config.Config, error) {
	if err := config.LoadConfig(); err != nil {
		return nil, nil, err
	}
	cfg := config.Cfg
	logger.InitLogger(cfg.Log.Level)
	db, err := database.NewGormDB(&cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return db, cfg, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed the permission catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			if err = database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

func createCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-categories",
		Short: "Create the default post categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seeds, err := seedService()
			if err != nil {
				return err
			}
			results, err := seeds.CreateCategories(cmd.Context())
			if err != nil {
				return err
			}
			printSeedResults(cmd, results, "category", "Category", "categories")
			return nil
		},
	}
}

func seedSamplePostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-sample-posts",
		Short: "Create published sample posts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seeds, err := seedService()
			if err != nil {
				return err
			}
			results, err := seeds.SeedSamplePosts(cmd.Context())
			if err != nil {
				return err
			}
			printSeedResults(cmd, results, "post", "Post", "posts")
			return nil
		},
	}
}

func seedService() (service.SeedService, error) {
	db, cfg, err := openDB()
	if err != nil {
		return nil, err
	}
	return service.NewSeedService(repository.NewPostRepo(db), repository.NewCategoryRepo(db),
		util.NewSlugGenerator(cfg.Slug.Transliterate)), nil
}

func printSeedResults(cmd *cobra.Command, results []service.SeedResult, noun, title, plural string) {
	created := 0
	for _, r := range results {
		if r.Created {
			created++
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s\n", noun, r.Name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists: %s\n", title, r.Name)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal %s created: %d\n", plural, created)
}

func permissionService() (service.PermissionService, error) {
	db, _, err := openDB()
	if err != nil {
		return nil, err
	}
	return service.NewPermissionService(repository.NewPermissionRepo(db), repository.NewUserRepo(db)), nil
}

func grantStaffPermissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant-staff-permissions",
		Short: "Grant all view/add/change/delete permissions to existing staff users (non-superusers)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			perms, err := permissionService()
			if err != nil {
				return err
			}
			grants, err := perms.GrantAllStaff(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d staff users (non-superusers)\n", len(grants))
			for _, g := range grants {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Assigned %d permissions to %s\n", g.Granted, g.Username)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Done! All staff users now have full permissions.")
			return nil
		},
	}
}

func assignAdminViewPermsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign-admin-view-perms",
		Short: "Assign view_ and change_ permissions for non-system apps to staff users (non-superusers)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			perms, err := permissionService()
			if err != nil {
				return err
			}
			grants, err := perms.AssignViewPerms(cmd.Context())
			if err != nil {
				return err
			}
			for _, g := range grants {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %d -> %d perms\n", g.Username, g.Before, g.After)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Done.")
			return nil
		},
	}
}

func createSuperuserCmd() *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "create-superuser",
		Short: "Create a superuser account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			userRepo := repository.NewUserRepo(db)
			perms := service.NewPermissionService(repository.NewPermissionRepo(db), userRepo)
			// superusers never receive email from this path
			users := service.NewUserAdminService(userRepo, perms, nil, audit.NewLogger(audit.NewSlogSink(nil)), 0)

			user, err := users.CreateSuperuser(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Superuser created successfully: %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
