package main

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/collabcloud/collab/internal/app"
	"github.com/collabcloud/collab/internal/config"
	"github.com/collabcloud/collab/internal/model"
	"github.com/collabcloud/collab/internal/store/local"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer
// app.Close().
func newApp() (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config (run 'collab config init' first): %w", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(data), nil
}

// readFileInput loads a file from disk into an upload input, guessing the
// mime type from the extension.
func readFileInput(path string) (model.FileInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FileInput{}, fmt.Errorf("reading %s: %w", path, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "text/plain"
	}

	return model.FileInput{
		Name:     filepath.Base(path),
		MimeType: mimeType,
		Content:  string(data),
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "collab",
	Short: "CollabCloud project collaboration client",
}

// config commands

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitBaseURL string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		clientID := uuid.New().String()
		cfg := config.NewConfig(clientID, defaults["base_dir"])
		cfg.BaseURL = configInitBaseURL

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Client ID: %s\n", clientID)
		if cfg.RemoteMode() {
			fmt.Printf("Mode: remote (%s)\n", cfg.BaseURL)
		} else {
			fmt.Printf("Mode: local (%s)\n", cfg.Local.DataDir)
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Client ID: %s\n", cfg.ClientID)
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		if cfg.RemoteMode() {
			fmt.Printf("Mode:      remote (%s)\n", cfg.BaseURL)
		} else {
			fmt.Printf("Mode:      local (%s)\n", cfg.Local.DataDir)
			if err := local.CheckSchema(cfg.Local.DataDir); err != nil {
				fmt.Printf("Store:     %v\n", err)
			} else {
				fmt.Printf("Store:     schema up-to-date\n")
			}
		}
		return nil
	},
}

// auth commands

var registerEmail, registerName string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		password, err := promptPassword("Password")
		if err != nil {
			return err
		}

		user, err := a.Service().Register(cmd.Context(), registerEmail, password, registerName)
		if err != nil {
			return err
		}
		if _, err := a.Service().Login(cmd.Context(), user.Email, password); err != nil {
			return err
		}
		if err := a.SaveSession(); err != nil {
			return err
		}

		fmt.Printf("Registered and logged in as %s\n", user.Email)
		return nil
	},
}

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		password, err := promptPassword("Password")
		if err != nil {
			return err
		}

		auth, err := a.Service().Login(cmd.Context(), loginEmail, password)
		if err != nil {
			return err
		}
		if err := a.SaveSession(); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s\n", auth.User.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ClearSession(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var resetEmail string

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Request a password reset",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().ResetPassword(cmd.Context(), resetEmail); err != nil {
			return err
		}
		fmt.Println("If the account exists, a reset has been requested")
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change password",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		current, err := promptPassword("Current password")
		if err != nil {
			return err
		}
		next, err := promptPassword("New password")
		if err != nil {
			return err
		}

		if err := a.Service().ChangePassword(cmd.Context(), current, next); err != nil {
			return err
		}
		fmt.Println("Password changed")
		return nil
	},
}

// project commands

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectNewName, projectNewDesc string
var projectNewFiles []string

var projectNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var files []model.FileInput
		for _, path := range projectNewFiles {
			f, err := readFileInput(path)
			if err != nil {
				return err
			}
			files = append(files, f)
		}

		project, err := a.Service().CreateProject(cmd.Context(), projectNewName, projectNewDesc, files)
		if err != nil {
			return err
		}

		fmt.Printf("Created project %s (%s) with %d file(s)\n", project.Name, project.ID, len(project.Files))
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		projects, err := a.Service().Projects(cmd.Context())
		if err != nil {
			return err
		}

		for _, p := range projects {
			fmt.Printf("%s  %s  (%d files)  %s\n",
				p.ID, p.Name, len(p.Files), p.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show a project and its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		project, err := a.Service().Project(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s\n", project.ID, project.Name)
		if project.Description != "" {
			fmt.Printf("  %s\n", project.Description)
		}
		for _, f := range project.Files {
			fmt.Printf("  %s  %s  (%s)\n", f.ID, f.Name, f.MimeType)
		}
		return nil
	},
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <project-id>",
	Short: "Delete a project and its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteProject(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted project %s\n", args[0])
		return nil
	},
}

// file commands

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Manage project files",
}

var fileAddCmd = &cobra.Command{
	Use:   "add <project-id> <path>...",
	Short: "Upload files to a project",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var files []model.FileInput
		for _, path := range args[1:] {
			f, err := readFileInput(path)
			if err != nil {
				return err
			}
			files = append(files, f)
		}

		project, err := a.Service().UploadFiles(cmd.Context(), args[0], files)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %d file(s); project now has %d\n", len(files), len(project.Files))
		return nil
	},
}

var fileRmCmd = &cobra.Command{
	Use:   "rm <project-id> <file-id>",
	Short: "Delete a file from a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Service().DeleteFile(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Deleted file %s\n", args[1])
		return nil
	},
}

var fileCatCmd = &cobra.Command{
	Use:   "cat <project-id> <file-id>",
	Short: "Print a file's current content",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		content, err := a.Service().FileContent(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

var filePutCmd = &cobra.Command{
	Use:   "put <project-id> <file-id> <path>",
	Short: "Overwrite a file's content without creating a version",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[2], err)
		}

		if err := a.Service().WriteFileContent(cmd.Context(), args[0], args[1], string(data)); err != nil {
			return err
		}
		fmt.Printf("Updated content of file %s\n", args[1])
		return nil
	},
}

// version commands

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Manage file versions",
}

var versionSaveMessage, versionSaveFrom string

var versionSaveCmd = &cobra.Command{
	Use:   "save <project-id> <file-id>",
	Short: "Save a named version of a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var content string
		if versionSaveFrom != "" {
			data, err := os.ReadFile(versionSaveFrom)
			if err != nil {
				return fmt.Errorf("reading %s: %w", versionSaveFrom, err)
			}
			content = string(data)
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = string(data)
		}

		version, err := a.Service().SaveVersion(cmd.Context(), args[0], args[1], content, versionSaveMessage)
		if err != nil {
			return err
		}
		fmt.Printf("Saved version %s: %s\n", version.ID, version.CommitMessage)
		return nil
	},
}

var versionListProject, versionListFile string

var versionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List versions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		versions, err := a.Service().Versions(cmd.Context(), model.VersionFilter{
			ProjectID: versionListProject,
			FileID:    versionListFile,
		})
		if err != nil {
			return err
		}

		for _, v := range versions {
			fmt.Printf("%s  %s  %s  %s\n",
				v.ID, v.Timestamp.Format("2006-01-02 15:04"), v.Author, v.CommitMessage)
		}
		return nil
	},
}

var versionRestoreCmd = &cobra.Command{
	Use:   "restore <project-id> <file-id> <version-id>",
	Short: "Make an old version's content current",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		restored, err := a.Service().RestoreVersion(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Restored as new version %s\n", restored.ID)
		return nil
	},
}

// comment commands

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage comments",
}

var commentAddText, commentAddFile string

var commentAddCmd = &cobra.Command{
	Use:   "add <project-id>",
	Short: "Comment on a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		comment, err := a.Service().PostComment(cmd.Context(), commentAddText, args[0], commentAddFile)
		if err != nil {
			return err
		}
		fmt.Printf("Posted comment %s\n", comment.ID)
		return nil
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List comments, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		projectID := ""
		if len(args) > 0 {
			projectID = args[0]
		}

		comments, err := a.Service().Comments(cmd.Context(), projectID)
		if err != nil {
			return err
		}

		for _, c := range comments {
			fmt.Printf("%s  %s  %s: %s\n",
				c.ID, c.Timestamp.Format("2006-01-02 15:04"), c.Author, c.Text)
		}
		return nil
	},
}

var commentRmCmd = &cobra.Command{
	Use:   "rm <comment-id>",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteComment(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted comment %s\n", args[0])
		return nil
	},
}

// collaborator commands

var collaboratorCmd = &cobra.Command{
	Use:   "collaborator",
	Short: "Manage project collaborators",
}

var collaboratorAddPermission string

var collaboratorAddCmd = &cobra.Command{
	Use:   "add <project-id> <email>",
	Short: "Grant a user access to a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		grant, err := a.Service().AddCollaborator(cmd.Context(), args[0], args[1],
			model.Permission(collaboratorAddPermission))
		if err != nil {
			return err
		}
		fmt.Printf("Added %s with %s access\n", grant.UserEmail, grant.Permission)
		return nil
	},
}

var collaboratorListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List a project's collaborators",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		grants, err := a.Service().Collaborators(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		for _, g := range grants {
			fmt.Printf("%s  %s  %s  %s\n",
				g.ID, g.UserEmail, g.Permission, g.AddedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var collaboratorRmCmd = &cobra.Command{
	Use:   "rm <project-id> <grant-id>",
	Short: "Revoke a collaborator grant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().RemoveCollaborator(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Removed grant %s\n", args[1])
		return nil
	},
}

// activity commands

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "View the activity log",
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activity entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		for _, e := range a.Service().Recorder().Logs(cmd.Context()) {
			fmt.Printf("%s  %-22s %s\n",
				e.Timestamp.Format("2006-01-02 15:04"), e.ActionType, e.ActionDetails)
		}
		return nil
	},
}

var activityClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the activity log (best effort)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		a.Service().Recorder().Clear(cmd.Context())
		fmt.Println("Activity log cleared where supported")
		return nil
	},
}

// profile commands

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Service().Profile(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Name:  %s\n", p.Name)
		fmt.Printf("Email: %s\n", p.Email)
		if p.Bio != "" {
			fmt.Printf("Bio:   %s\n", p.Bio)
		}
		return nil
	},
}

var profileEditName, profileEditEmail, profileEditBio string

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Service().Profile(cmd.Context())
		if err != nil {
			return err
		}

		if profileEditName != "" {
			p.Name = profileEditName
		}
		if profileEditEmail != "" {
			p.Email = profileEditEmail
		}
		if profileEditBio != "" {
			p.Bio = profileEditBio
		}
		if strings.TrimSpace(p.Name) == "" {
			p.Name = a.Session().Name
		}

		saved, err := a.Service().SaveProfile(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Printf("Saved profile for %s\n", saved.Name)
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitBaseURL, "base-url", "", "remote backend URL (omit for local mode)")
	configCmd.AddCommand(configInitCmd, configShowCmd)

	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("name")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.MarkFlagRequired("email")

	resetPasswordCmd.Flags().StringVar(&resetEmail, "email", "", "account email")
	resetPasswordCmd.MarkFlagRequired("email")

	projectNewCmd.Flags().StringVar(&projectNewName, "name", "", "project name")
	projectNewCmd.Flags().StringVar(&projectNewDesc, "desc", "", "project description")
	projectNewCmd.Flags().StringArrayVar(&projectNewFiles, "file", nil, "file to include (repeatable)")
	projectNewCmd.MarkFlagRequired("name")
	projectCmd.AddCommand(projectNewCmd, projectListCmd, projectShowCmd, projectRmCmd)

	fileCmd.AddCommand(fileAddCmd, fileRmCmd, fileCatCmd, filePutCmd)

	versionSaveCmd.Flags().StringVarP(&versionSaveMessage, "message", "m", "", "commit message")
	versionSaveCmd.Flags().StringVar(&versionSaveFrom, "from", "", "read content from file instead of stdin")
	versionSaveCmd.MarkFlagRequired("message")
	versionListCmd.Flags().StringVar(&versionListProject, "project", "", "filter by project id")
	versionListCmd.Flags().StringVar(&versionListFile, "file", "", "filter by file id")
	versionCmd.AddCommand(versionSaveCmd, versionListCmd, versionRestoreCmd)

	commentAddCmd.Flags().StringVarP(&commentAddText, "message", "m", "", "comment text")
	commentAddCmd.Flags().StringVar(&commentAddFile, "file", "", "attach to a file id")
	commentAddCmd.MarkFlagRequired("message")
	commentCmd.AddCommand(commentAddCmd, commentListCmd, commentRmCmd)

	collaboratorAddCmd.Flags().StringVar(&collaboratorAddPermission, "permission", "view", "view, edit, or admin")
	collaboratorCmd.AddCommand(collaboratorAddCmd, collaboratorListCmd, collaboratorRmCmd)

	activityCmd.AddCommand(activityListCmd, activityClearCmd)

	profileEditCmd.Flags().StringVar(&profileEditName, "name", "", "display name")
	profileEditCmd.Flags().StringVar(&profileEditEmail, "email", "", "contact email")
	profileEditCmd.Flags().StringVar(&profileEditBio, "bio", "", "short bio")
	profileCmd.AddCommand(profileShowCmd, profileEditCmd)

	rootCmd.AddCommand(
		configCmd,
		registerCmd, loginCmd, logoutCmd, resetPasswordCmd, passwdCmd,
		projectCmd, fileCmd, versionCmd, commentCmd,
		collaboratorCmd, activityCmd, profileCmd,
	)
}
