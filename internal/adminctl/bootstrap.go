// Package adminctl creates the first administrator account. Every other
// account is created through the API by an authenticated administrator, so
// a fresh deployment needs this one out-of-band step.
package adminctl

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/educagestor/educagestor/internal/dbx"
	"github.com/educagestor/educagestor/internal/server/auth"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func readLine(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Bootstrap prompts for the administrator's details on in/out and writes
// the account in one transaction. Migrations must have been applied first.
func Bootstrap(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, in io.Reader, out io.Writer) (*models.User, error) {
	reader := bufio.NewReader(in)

	username, err := readLine(reader, "Admin username", out)
	if err != nil {
		return nil, err
	}
	email, err := readLine(reader, "Admin email", out)
	if err != nil {
		return nil, err
	}
	password, err := promptPassword(out)
	if err != nil {
		return nil, err
	}

	if username == "" || email == "" || password == "" {
		return nil, errors.New("username, email and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
		Roles:        []authz.Role{authz.RoleAdmin},
		Active:       true,
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := m.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Created administrator %q (%s)\n", user.Username, user.ID)
	return user, nil
}
