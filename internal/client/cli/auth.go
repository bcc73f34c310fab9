package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/charbel291291291/election2026/internal/common"
)

// getSimpleText and getPIN are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPIN = GetPIN

// Login prompts for a phone number and PIN and authenticates against the
// backend. On success the issued session token is retained by the API
// client and the agent profile is recorded for report attribution.
//
// The PIN byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	phone, err := getSimpleText(a.reader, "Enter phone number", os.Stdout)
	if err != nil {
		return err
	}

	pin, err := getPIN(os.Stdout, "Enter PIN")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pin)

	session, err := a.client.Login(ctx, phone, string(pin))
	if err != nil {
		if errors.Is(err, common.ErrNetworkUnavailable) {
			log.Printf("Server unavailable, try again once connectivity returns")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.profile = &session.Profile
	a.gateway.SetProfile(session.Profile)
	a.monitor.Set(true)

	log.Printf("Login successful")
	return nil
}
