package newsletter

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/luisjesusbernal/Geek-News/app/database"
	"github.com/luisjesusbernal/Geek-News/app/mailer"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrNoSubscribers    = errors.New("no subscribers to send to")
)

// Report is the aggregate outcome of one campaign send run.
type Report struct {
	CampaignID   int64
	SentTo       int
	SuccessCount int
	PreviewLinks []string
	LogID        int64
}

// Dispatcher sends a campaign to every current subscriber and reports an
// aggregate outcome. Individual send failures never abort the batch; they
// only lower the success count. Fan-out is bounded by a worker pool and
// each send carries its own timeout, so one hung recipient cannot stall
// the run indefinitely.
type Dispatcher struct {
	campaigns        database.CampaignRepository
	subscribers      database.SubscriberRepository
	transportFactory mailer.TransportFactory
	from             string
	fromName         string
	workerCount      int
	sendTimeout      time.Duration
}

func NewDispatcher(campaigns database.CampaignRepository, subscribers database.SubscriberRepository,
	transportFactory mailer.TransportFactory, from string, workerCount int, sendTimeout time.Duration) *Dispatcher {
	if workerCount <= 0 {
		workerCount = 10
	}
	if sendTimeout <= 0 {
		sendTimeout = 30 * time.Second
	}

	return &Dispatcher{
		campaigns:        campaigns,
		subscribers:      subscribers,
		transportFactory: transportFactory,
		from:             from,
		fromName:         "Geek News",
		workerCount:      workerCount,
		sendTimeout:      sendTimeout,
	}
}

// Send runs one delivery attempt for the campaign. The subscriber list is
// read fresh here, not snapshotted earlier. Exactly one log row is
// appended per completed run; precondition failures append nothing.
func (d *Dispatcher) Send(ctx context.Context, campaignID int64) (*Report, error) {
	campaign, err := d.campaigns.Get(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	emails, err := d.subscribers.GetEmails()
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return nil, ErrNoSubscribers
	}

	transport, err := d.transportFactory()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire mail transport: %w", err)
	}

	slog.Info("Starting campaign delivery", "campaign_id", campaignID, "recipients", len(emails), "workers", d.workerCount)
	startedAt := time.Now()

	textBody := campaign.Body
	htmlBody := RenderHTMLBody(campaign.Subject, campaign.Body)

	type sendResult struct {
		recipient   string
		previewLink string
		err         error
	}

	jobs := make(chan string, len(emails))
	results := make(chan sendResult, len(emails))

	workerCount := d.workerCount
	if workerCount > len(emails) {
		workerCount = len(emails)
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for to := range jobs {
				sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
				link, err := transport.Send(sendCtx, mailer.Message{
					From:     d.from,
					FromName: d.fromName,
					To:       to,
					Subject:  campaign.Subject,
					TextBody: textBody,
					HTMLBody: htmlBody,
				})
				cancel()
				results <- sendResult{recipient: to, previewLink: link, err: err}
			}
		}()
	}

	for _, to := range emails {
		jobs <- to
	}
	close(jobs)

	wg.Wait()
	close(results)

	// Preview links end up in completion order: sends are concurrent and
	// unordered relative to each other
	successCount := 0
	previewLinks := make([]string, 0, len(emails))
	for result := range results {
		if result.err != nil {
			slog.Warn("Campaign send failed for recipient", "campaign_id", campaignID, "recipient", result.recipient, "error", result.err)
			continue
		}
		successCount++
		if result.previewLink != "" {
			previewLinks = append(previewLinks, result.previewLink)
		}
	}

	logID, err := d.campaigns.AppendLog(campaignID, len(emails), successCount, previewLinks)
	if err != nil {
		return nil, fmt.Errorf("failed to record campaign log: %w", err)
	}

	slog.Info("Campaign delivery completed", "campaign_id", campaignID, "sent_to", len(emails),
		"success_count", successCount, "duration", time.Since(startedAt).String())

	return &Report{
		CampaignID:   campaignID,
		SentTo:       len(emails),
		SuccessCount: successCount,
		PreviewLinks: previewLinks,
		LogID:        logID,
	}, nil
}

// RenderHTMLBody wraps the plaintext campaign body in the portal's simple
// HTML template, escaping the content and keeping line breaks.
func RenderHTMLBody(subject, body string) string {
	escaped := html.EscapeString(body)
	withBreaks := strings.ReplaceAll(escaped, "\n", "<br>")

	return fmt.Sprintf(`<div style="font-family:system-ui,Arial,sans-serif;"><h2>%s</h2><div>%s</div></div>`,
		html.EscapeString(subject), withBreaks)
}
