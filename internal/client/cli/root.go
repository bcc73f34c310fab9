package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/charbel291291291/election2026/internal/common"
)

// Root prompts for the root PIN and starts a time-boxed root session. The
// local prompt only mirrors the grant; every privileged action is
// re-validated by the server.
func (a *App) Root(ctx context.Context) error {
	pin, err := getPIN(os.Stdout, "Enter root PIN")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pin)

	if err := a.escalator.Escalate(ctx, string(pin)); err != nil {
		switch {
		case errors.Is(err, common.ErrLockedOut):
			log.Printf("Too many attempts: %s", err.Error())
		case errors.Is(err, common.ErrAuthorizationDenied), errors.Is(err, common.ErrUnauthorized):
			log.Printf("Root PIN rejected")
		default:
			log.Printf("Root verification failed: %s", err.Error())
		}
		return err
	}

	printlnFn("Root session active for 20 minutes")
	return nil
}

// Action prompts for a privileged action name and its payload fields and
// runs it through the escalator.
func (a *App) Action(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter action (SUSPEND_ORG, ACTIVATE_ORG, CHANGE_PLAN, BAN_USER, MAINTENANCE_MODE)", os.Stdout)
	if err != nil {
		return err
	}

	payload, err := GetKeyValues(a.reader, os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	result, err := a.escalator.InvokeAction(ctx, name, payload)
	if err != nil {
		if errors.Is(err, common.ErrAuthorizationExpired) {
			log.Printf("Root session expired, run 'root' again")
		} else {
			log.Printf("Action failed: %s", err.Error())
		}
		return err
	}

	printlnFn(string(result))
	return nil
}
