package migrate

import (
	"fmt"
	"time"

	"github.com/svelle/mattermost-integration-migration/pkg/mmclient"
)

// fakeAPI is an in-memory stand-in for the Mattermost client. List results
// and per-call failures are scripted through fields; creations are captured
// for inspection.
type fakeAPI struct {
	serverURL string

	me      *mmclient.User
	meErrs  []error // indexed by call, entries beyond the slice succeed
	meCalls int

	incoming    []mmclient.IncomingWebhook
	incomingErr error
	outgoing    []mmclient.OutgoingWebhook
	outgoingErr error
	bots        []mmclient.Bot
	botsErr     error
	listCalls   int

	// listIncludesCreated makes the webhook List methods return earlier
	// creations too, like a real server would between two runs.
	listIncludesCreated bool

	onCreateIncoming func(mmclient.IncomingWebhook) error
	onCreateOutgoing func(mmclient.OutgoingWebhook) error
	onCreateBot      func(mmclient.Bot) error

	createdIncoming []mmclient.IncomingWebhook
	createdOutgoing []mmclient.OutgoingWebhook
	createdBots     []mmclient.Bot
	createCalls     int
}

func (f *fakeAPI) ServerURL() string {
	if f.serverURL == "" {
		return "https://target.example.com"
	}
	return f.serverURL
}

func (f *fakeAPI) GetMe() (*mmclient.User, error) {
	call := f.meCalls
	f.meCalls++
	if call < len(f.meErrs) && f.meErrs[call] != nil {
		return nil, f.meErrs[call]
	}
	if f.me != nil {
		return f.me, nil
	}
	return &mmclient.User{ID: "u1", Username: "admin"}, nil
}

func (f *fakeAPI) ListIncomingWebhooks() ([]mmclient.IncomingWebhook, error) {
	f.listCalls++
	if f.incomingErr != nil {
		return nil, f.incomingErr
	}
	if f.listIncludesCreated {
		return append(append([]mmclient.IncomingWebhook{}, f.incoming...), f.createdIncoming...), nil
	}
	return f.incoming, nil
}

func (f *fakeAPI) ListOutgoingWebhooks() ([]mmclient.OutgoingWebhook, error) {
	f.listCalls++
	if f.outgoingErr != nil {
		return nil, f.outgoingErr
	}
	if f.listIncludesCreated {
		return append(append([]mmclient.OutgoingWebhook{}, f.outgoing...), f.createdOutgoing...), nil
	}
	return f.outgoing, nil
}

func (f *fakeAPI) ListBots() ([]mmclient.Bot, error) {
	f.listCalls++
	if f.botsErr != nil {
		return nil, f.botsErr
	}
	return f.bots, nil
}

func (f *fakeAPI) CreateIncomingWebhook(hook *mmclient.IncomingWebhook) (*mmclient.IncomingWebhook, error) {
	f.createCalls++
	if f.onCreateIncoming != nil {
		if err := f.onCreateIncoming(*hook); err != nil {
			return nil, err
		}
	}
	f.createdIncoming = append(f.createdIncoming, *hook)
	created := *hook
	created.ID = fmt.Sprintf("in%d", len(f.createdIncoming))
	return &created, nil
}

func (f *fakeAPI) CreateOutgoingWebhook(hook *mmclient.OutgoingWebhook) (*mmclient.OutgoingWebhook, error) {
	f.createCalls++
	if f.onCreateOutgoing != nil {
		if err := f.onCreateOutgoing(*hook); err != nil {
			return nil, err
		}
	}
	f.createdOutgoing = append(f.createdOutgoing, *hook)
	created := *hook
	created.ID = fmt.Sprintf("out%d", len(f.createdOutgoing))
	return &created, nil
}

func (f *fakeAPI) CreateBot(bot *mmclient.Bot) (*mmclient.Bot, error) {
	f.createCalls++
	if f.onCreateBot != nil {
		if err := f.onCreateBot(*bot); err != nil {
			return nil, err
		}
	}
	f.createdBots = append(f.createdBots, *bot)
	created := *bot
	created.UserID = fmt.Sprintf("bot%d", len(f.createdBots))
	return &created, nil
}

// fixedTime is the clock used across the engine tests so provenance notes
// and export metadata are deterministic.
var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// fixedNote is the provenance annotation produced under fixedClock.
const fixedNote = "[Imported on 2026-03-14 09:26:53]"
