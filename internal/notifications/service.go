package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"

	"guideomra/internal/users"
	"guideomra/pkg/logger"

	"github.com/google/uuid"
)

// GuideDirectory resolves the guide a reservation was made with
type GuideDirectory interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*users.Profile, error)
}

const dateLayout = "02/01/2006"

const guideTextTemplate = `Assalamou alaykoum {{.GuideName}},

Vous avez reçu une nouvelle réservation pour « {{.ServiceName}} ».

Dates : {{.Dates}}{{if .VisitTime}}
Heure : {{.VisitTime}}{{end}}
Lieu de rendez-vous : {{.Location}}
Pèlerins : {{.Pilgrims}}
Total : {{.Total}}

Référence : {{.ReservationID}}

L'équipe Guide Omra`

var guideHTMLTemplate = htmltemplate.Must(htmltemplate.New("guide_reservation").Parse(`
<h2>Nouvelle réservation</h2>
<p>Assalamou alaykoum {{.GuideName}},</p>
<p>Vous avez reçu une nouvelle réservation pour <strong>{{.ServiceName}}</strong>.</p>
<ul>
  <li>Dates : {{.Dates}}</li>
  {{if .VisitTime}}<li>Heure : {{.VisitTime}}</li>{{end}}
  <li>Lieu de rendez-vous : {{.Location}}</li>
  <li>Pèlerins : {{.Pilgrims}}</li>
  <li>Total : <strong>{{.Total}}</strong></li>
</ul>
<p>Référence : {{.ReservationID}}</p>
<p>L'équipe Guide Omra</p>
`))

var guideText = texttemplate.Must(texttemplate.New("guide_reservation_text").Parse(guideTextTemplate))

type guideEmailData struct {
	GuideName     string
	ServiceName   string
	Dates         string
	VisitTime     string
	Location      string
	Pilgrims      int
	Total         string
	ReservationID string
}

// GuideNotifier emails the guide about each new reservation
type GuideNotifier struct {
	guides GuideDirectory
	mailer Mailer
	log    *logger.Logger
}

func NewGuideNotifier(guides GuideDirectory, mailer Mailer) *GuideNotifier {
	return &GuideNotifier{guides: guides, mailer: mailer, log: logger.GetDefault()}
}

func (n *GuideNotifier) HandleReservation(ctx context.Context, event *ReservationEvent) error {
	if event.Type != EventTypeReservationCreated {
		return fmt.Errorf("%w: %s", ErrUnsupportedEvent, event.Type)
	}

	guide, err := n.guides.GetProfile(ctx, event.GuideID)
	if errors.Is(err, users.ErrProfileNotFound) {
		n.log.WarnContext(ctx, "Guide of reservation not found, skipping email",
			slog.String("reservation_id", event.ReservationID.String()),
			slog.String("guide_id", event.GuideID.String()),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load guide: %w", err)
	}
	if guide.Email == "" {
		n.log.WarnContext(ctx, "Guide has no email, skipping",
			slog.String("guide_id", event.GuideID.String()))
		return nil
	}

	email, err := renderGuideEmail(guide, event)
	if err != nil {
		return err
	}
	if err := n.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("send guide email: %w", err)
	}

	n.log.InfoContext(ctx, "Guide notified",
		slog.String("reservation_id", event.ReservationID.String()),
		slog.String("guide_id", event.GuideID.String()),
	)
	return nil
}

func renderGuideEmail(guide *users.Profile, event *ReservationEvent) (*Email, error) {
	dates := event.StartDate.Format(dateLayout)
	if !event.SingleDay() {
		dates = fmt.Sprintf("du %s au %s", event.StartDate.Format(dateLayout), event.EndDate.Format(dateLayout))
	}
	data := guideEmailData{
		GuideName:     guide.FullName,
		ServiceName:   event.ServiceName,
		Dates:         dates,
		VisitTime:     event.VisitTime,
		Location:      event.Location,
		Pilgrims:      event.Pilgrims,
		Total:         fmt.Sprintf("%d %s", event.TotalPrice, event.Currency),
		ReservationID: event.ReservationID.String(),
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := guideHTMLTemplate.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("render html email: %w", err)
	}
	if err := guideText.Execute(&textBuf, data); err != nil {
		return nil, fmt.Errorf("render text email: %w", err)
	}

	return &Email{
		To:       guide.Email,
		ToName:   guide.FullName,
		Subject:  "Nouvelle réservation : " + event.ServiceName,
		HTMLBody: htmlBuf.String(),
		TextBody: textBuf.String(),
	}, nil
}
