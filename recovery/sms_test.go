package recovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"
)

func TestTwilioMessengerSend(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody, gotUser, gotPass string
	status := http.StatusCreated
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		test.That(t, r.ParseForm(), test.ShouldBeNil)
		gotTo = r.PostFormValue("To")
		gotFrom = r.PostFormValue("From")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(status)
	}))
	defer server.Close()

	messenger := &twilioMessenger{
		accountSID: "AC123",
		authToken:  "secret",
		client:     server.Client(),
		baseURL:    server.URL,
	}

	err := messenger.Send(context.Background(), "+15551230000", "+15559870000", "collision imminent, robot stopped")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, gotPath, test.ShouldEqual, "/2010-04-01/Accounts/AC123/Messages.json")
	test.That(t, gotUser, test.ShouldEqual, "AC123")
	test.That(t, gotPass, test.ShouldEqual, "secret")
	test.That(t, gotTo, test.ShouldEqual, "+15551230000")
	test.That(t, gotFrom, test.ShouldEqual, "+15559870000")
	test.That(t, gotBody, test.ShouldEqual, "collision imminent, robot stopped")

	status = http.StatusUnauthorized
	err = messenger.Send(context.Background(), "+15551230000", "+15559870000", "hello")
	test.That(t, err, test.ShouldNotBeNil)
}

type fakeMessenger struct {
	sent []string
	err  error
}

func (m *fakeMessenger) Send(ctx context.Context, to, from, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, body)
	return nil
}

func TestSMSRecoveryTrigger(t *testing.T) {
	logger, logs := golog.NewObservedTestLogger(t)
	messenger := &fakeMessenger{}
	recovery := NewSMSRecovery(messenger, "+15551230000", "+15559870000", logger)

	err := recovery.Trigger(context.Background(), "robot needs help")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, messenger.sent, test.ShouldResemble, []string{"robot needs help"})
	test.That(t, logs.FilterMessageSnippet("SMS sent successfully").Len(), test.ShouldEqual, 1)
}

func TestSMSRecoveryTriggerFailure(t *testing.T) {
	logger, logs := golog.NewObservedTestLogger(t)
	messenger := &fakeMessenger{err: context.DeadlineExceeded}
	recovery := NewSMSRecovery(messenger, "+15551230000", "+15559870000", logger)

	err := recovery.Trigger(context.Background(), "robot needs help")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, logs.FilterMessageSnippet("message send failed").Len(), test.ShouldEqual, 1)
}
