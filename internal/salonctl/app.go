// Package salonctl is the operator command line: it provisions salons and
// manages their activation keys directly against the database.
package salonctl

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/netx"
	"github.com/ansuman15/salon-software-sub002/internal/server/auth"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/services"
)

var ErrUsage = errors.New("usage: salonctl <create|list|rotate-key|status|upload-logo|hash-password> [flags]")

type salonAdmin interface {
	Create(ctx context.Context, in services.NewSalonInput) (*models.Salon, string, error)
	List(ctx context.Context) ([]*models.Salon, error)
	SetStatus(ctx context.Context, id, status string) error
	RotateKey(ctx context.Context, id, custom string) (string, error)
}

type mediaPresigner interface {
	PresignUpload(ctx context.Context, salonID, kind, contentType string) (*services.Upload, error)
}

type App struct {
	salons salonAdmin
	media  mediaPresigner
	client *http.Client
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(salons salonAdmin, in io.Reader, out io.Writer) *App {
	return &App{salons: salons, in: bufio.NewReader(in), out: out}
}

// WithMedia enables upload-logo. client may be nil.
func (a *App) WithMedia(m mediaPresigner, client *http.Client) *App {
	a.media, a.client = m, client
	return a
}

// Run dispatches one subcommand. hash-password needs no database, so salons
// may be nil for it.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "create":
		return a.create(ctx, rest)
	case "list":
		return a.list(ctx)
	case "rotate-key":
		return a.rotateKey(ctx, rest)
	case "status":
		return a.status(ctx, rest)
	case "upload-logo":
		return a.uploadLogo(ctx, rest)
	case "hash-password":
		return a.hashPassword()
	default:
		return ErrUsage
	}
}

// NeedsDatabase reports whether the subcommand touches salons.
func NeedsDatabase(args []string) bool {
	return len(args) > 0 && args[0] != "hash-password"
}

func (a *App) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var in services.NewSalonInput
	fs.StringVar(&in.Name, "name", "", "salon name")
	fs.StringVar(&in.Email, "email", "", "login email")
	fs.StringVar(&in.Phone, "phone", "", "contact phone")
	fs.StringVar(&in.Plan, "plan", "", "initial plan (trial, monthly, yearly)")
	customKey := fs.Bool("custom-key", false, "prompt for the activation key instead of generating one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if in.Name == "" {
		if in.Name, err = GetSimpleText(a.in, "Salon name", a.out); err != nil {
			return err
		}
	}
	if in.Email == "" {
		if in.Email, err = GetSimpleText(a.in, "Login email", a.out); err != nil {
			return err
		}
	}
	if *customKey {
		if in.ActivationKey, err = GetSecret("Activation key", a.out); err != nil {
			return err
		}
	}

	salon, key, err := a.salons.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Salon %q created (id %s)\n", salon.Name, salon.ID)
	fmt.Fprintf(a.out, "Activation key: %s\n", key)
	fmt.Fprintln(a.out, "The key is shown once; hand it to the salon owner now.")
	return nil
}

func (a *App) list(ctx context.Context) error {
	salons, err := a.salons.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSTATUS\tPLAN\tEXPIRES")
	for _, s := range salons {
		expires := "-"
		if s.SubscriptionExpiresAt != nil {
			expires = s.SubscriptionExpiresAt.Format(time.DateOnly)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Email, s.Status, s.Plan, expires)
	}
	return tw.Flush()
}

func (a *App) rotateKey(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rotate-key", flag.ContinueOnError)
	fs.SetOutput(a.out)
	customKey := fs.Bool("custom-key", false, "prompt for the new key instead of generating one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: rotate-key [-custom-key] <salon-id>", common.ErrorValidation)
	}

	custom := ""
	if *customKey {
		var err error
		if custom, err = GetSecret("New activation key", a.out); err != nil {
			return err
		}
	}
	key, err := a.salons.RotateKey(ctx, fs.Arg(0), custom)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "New activation key: %s\n", key)
	return nil
}

func (a *App) status(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: status <salon-id> <active|suspended>", common.ErrorValidation)
	}
	if err := a.salons.SetStatus(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Salon %s is now %s\n", args[0], args[1])
	return nil
}

// uploadLogo stores a salon logo through a presigned URL, the same path the
// browser takes.
func (a *App) uploadLogo(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: upload-logo <salon-id> <image-file>", common.ErrorValidation)
	}
	if a.media == nil {
		return errors.New("object storage is not configured")
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	contentType := http.DetectContentType(data)

	up, err := a.media.PresignUpload(ctx, args[0], services.MediaLogo, contentType)
	if err != nil {
		return err
	}
	if err := netx.UploadToS3PresignedURL(ctx, a.client, up.URL, contentType, data); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s (%d bytes) as %s\n", contentType, len(data), up.Key)
	return nil
}

// hashPassword prints a bcrypt hash for ADMIN_PASSWORD_HASH.
func (a *App) hashPassword() error {
	pw, err := GetSecret("Admin password", a.out)
	if err != nil {
		return err
	}
	if len(pw) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", common.ErrorValidation)
	}
	hash, err := auth.HashSecret(pw)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, hash)
	return nil
}
