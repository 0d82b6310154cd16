package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/audio"
	"github.com/jbonatakis/hakim/internal/config"
	"github.com/jbonatakis/hakim/internal/court"
	"github.com/jbonatakis/hakim/internal/oracle"
	"github.com/jbonatakis/hakim/internal/store"
)

const (
	SavedNotice          = "Oyun Kaydedildi"
	GenerationFailedText = "Dava dosyası oluşturulamadı. Lütfen internet bağlantınızı kontrol ediniz."
	DeliberationMessage  = "Heyet Müzakere Ediyor..."
	EvidenceMarkerPrefix = "Mahkemeye Sunulan Delil"
	loadingMessageFormat = "Mahkeme Heyeti Teşkil Ediliyor... (Dosya No: #%d)"
	announcementFormat   = "Mahkeme heyeti yerini almıştır! Esas No: %d/%d. Taraflar hazır. Açık yargılamaya başlanıyor."
)

// AudioHook receives the session's sound cues. *audio.Coordinator
// implements it.
type AudioHook interface {
	OnPhaseChange(prev, next court.Phase)
	PlayOneShot(id audio.TrackID)
	SetMix(mix config.Mix)
}

type nopAudio struct{}

func (nopAudio) OnPhaseChange(court.Phase, court.Phase) {}
func (nopAudio) PlayOneShot(audio.TrackID)              {}
func (nopAudio) SetMix(config.Mix)                      {}

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	NoticeError
)

type Notice struct {
	Kind NoticeKind
	Text string
}

// Pending is the judge's unsent question.
type Pending struct {
	Target       string
	Evidence     string
	SelectorOpen bool
	Question     string
}

type Options struct {
	Gateway      *store.Gateway
	Oracle       oracle.Client
	Audio        AudioHook
	Logger       *zap.Logger
	Clock        func() time.Time
	NewID        func() string
	OpeningDelay time.Duration
}

// Session is the single mutable root of a game. It is not safe for
// concurrent use; only Job.Run may execute off the owning goroutine.
type Session struct {
	gw           *store.Gateway
	oracle       oracle.Client
	audio        AudioHook
	log          *zap.Logger
	clock        func() time.Time
	newID        func() string
	openingDelay time.Duration

	phase          court.Phase
	activeCase     *court.Case
	transcript     court.Transcript
	notebook       string
	pending        Pending
	busy           bool
	caseGen        uint64
	loadingMessage string
	announcement   string
	verdict        court.VerdictInput
	evaluation     *court.Evaluation
	progress       int
	settings       config.Settings
	notice         Notice
}

// New creates a session in MENU, loading settings and progress once.
func New(opts Options) *Session {
	s := &Session{
		gw:           opts.Gateway,
		oracle:       opts.Oracle,
		audio:        opts.Audio,
		log:          opts.Logger,
		clock:        opts.Clock,
		newID:        opts.NewID,
		openingDelay: opts.OpeningDelay,
		phase:        court.PhaseMenu,
		verdict:      court.NewVerdictInput(),
	}
	if s.gw == nil {
		s.gw = store.NewGateway(store.NewMemory(), opts.Logger)
	}
	if s.audio == nil {
		s.audio = nopAudio{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.Named("session")
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.openingDelay < 0 {
		s.openingDelay = 0
	}

	s.settings = s.gw.LoadSettings()
	s.progress = s.gw.LoadProgress()
	s.audio.SetMix(s.settings.Mix)
	return s
}

func (s *Session) Phase() court.Phase { return s.phase }

func (s *Session) Case() (court.Case, bool) {
	if s.activeCase == nil {
		return court.Case{}, false
	}
	return *s.activeCase, true
}

func (s *Session) Transcript() []court.Entry { return s.transcript.Entries() }

func (s *Session) Notebook() string { return s.notebook }

func (s *Session) Pending() Pending { return s.pending }

func (s *Session) Busy() bool { return s.busy }

func (s *Session) LoadingMessage() string { return s.loadingMessage }

func (s *Session) Announcement() string { return s.announcement }

func (s *Session) VerdictInput() court.VerdictInput { return s.verdict }

func (s *Session) Evaluation() (court.Evaluation, bool) {
	if s.evaluation == nil {
		return court.Evaluation{}, false
	}
	return *s.evaluation, true
}

func (s *Session) Progress() int { return s.progress }

func (s *Session) Tier() court.Tier { return court.TierFor(s.progress) }

func (s *Session) Settings() config.Settings { return s.settings }

func (s *Session) Notice() Notice { return s.notice }

func (s *Session) ClearNotice() { s.notice = Notice{} }

// HasSnapshot reports whether Resume would succeed.
func (s *Session) HasSnapshot() bool { return s.gw.HasSnapshot() }

// Targets lists who can be questioned in the active case.
func (s *Session) Targets() []string {
	if s.activeCase == nil {
		return nil
	}
	return court.Targets(*s.activeCase)
}

// setPhase is the only place the phase changes. The audio hook runs after
// the new phase is in place.
func (s *Session) setPhase(next court.Phase) {
	prev := s.phase
	s.phase = next
	s.log.Debug("phase", zap.String("from", string(prev)), zap.String("to", string(next)))
	s.audio.OnPhaseChange(prev, next)
}

func (s *Session) illegal(action string) error {
	return &TransitionError{Action: action, From: s.phase}
}

func (s *Session) record(role court.SpeakerRole, speaker, text string) court.Entry {
	return s.transcript.Append(court.Entry{
		ID:        s.newID(),
		Role:      role,
		Speaker:   speaker,
		Text:      text,
		Timestamp: s.clock(),
	})
}

func (s *Session) announce() {
	s.announcement = fmt.Sprintf(announcementFormat, s.progress, s.clock().Year())
}

// resetCase drops everything tied to the active case. Results of jobs
// started for the dropped case no longer apply.
func (s *Session) resetCase() {
	s.caseGen++
	s.busy = false
	s.activeCase = nil
	s.transcript = court.Transcript{}
	s.notebook = ""
	s.pending = Pending{}
	s.verdict = court.NewVerdictInput()
	s.evaluation = nil
	s.announcement = ""
}
