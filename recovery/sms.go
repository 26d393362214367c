// Package recovery contains behaviors a supervising layer can run when the
// controller aborts, currently an SMS alert sent through Twilio.
package recovery

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

const twilioBaseURL = "https://api.twilio.com"

// A Messenger delivers a text message.
type Messenger interface {
	Send(ctx context.Context, to, from, body string) error
}

type twilioMessenger struct {
	accountSID string
	authToken  string
	client     *http.Client
	baseURL    string
}

// NewTwilioMessenger returns a Messenger backed by the Twilio REST API.
func NewTwilioMessenger(accountSID, authToken string) Messenger {
	return &twilioMessenger{
		accountSID: accountSID,
		authToken:  authToken,
		client:     &http.Client{},
		baseURL:    twilioBaseURL,
	}
}

func (t *twilioMessenger) Send(ctx context.Context, to, from, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	endpoint := t.baseURL + "/2010-04-01/Accounts/" + t.accountSID + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "unable to reach sms gateway")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		utils.UncheckedError(resp.Body.Close())
	}()
	if resp.StatusCode >= 300 {
		return errors.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// SMSRecovery sends a configured alert when triggered.
type SMSRecovery struct {
	messenger Messenger
	to        string
	from      string
	logger    golog.Logger
}

// NewSMSRecovery returns a recovery behavior that texts the to number from
// the from number on every trigger.
func NewSMSRecovery(messenger Messenger, to, from string, logger golog.Logger) *SMSRecovery {
	return &SMSRecovery{messenger: messenger, to: to, from: from, logger: logger}
}

// Trigger sends the given message and reports whether delivery succeeded.
func (r *SMSRecovery) Trigger(ctx context.Context, message string) error {
	if err := r.messenger.Send(ctx, r.to, r.from, message); err != nil {
		r.logger.Errorw("message send failed", "error", err)
		return err
	}
	r.logger.Info("SMS sent successfully")
	return nil
}
