package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ContactOutreach/internal/config"
	"ContactOutreach/internal/domain"
	"ContactOutreach/internal/format"
	"ContactOutreach/internal/message"
	"ContactOutreach/internal/ports"
)

// statusSendable is the only validation verdict that allows sending.
const statusSendable = "valid"

// DispatchDeps wires the driven adapters into the outreach workflow.
type DispatchDeps struct {
	Ledger    ports.LedgerStore
	Validator ports.EmailValidator
	Email     ports.EmailSender
	SMS       ports.SMSSender
	Audit     ports.AuditWriter
	Config    config.Config
	Logger    *slog.Logger
}

// Dispatch drives outreach for every ledger row not yet marked contacted:
// validate each email, send email and SMS with per-channel retry, and flip
// the contacted flag on any successful send.
type Dispatch struct {
	ledger    ports.LedgerStore
	validator ports.EmailValidator
	email     ports.EmailSender
	sms       ports.SMSSender
	audit     ports.AuditWriter
	cfg       config.Config
	logger    *slog.Logger
}

// NewDispatch constructs the outreach workflow.
func NewDispatch(deps DispatchDeps) *Dispatch {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatch{
		ledger:    deps.Ledger,
		validator: deps.Validator,
		email:     deps.Email,
		sms:       deps.SMS,
		audit:     deps.Audit,
		cfg:       deps.Config,
		logger:    logger,
	}
}

// Run executes one outreach pass. Only a ledger read failure aborts the
// run; every per-contact and per-channel failure is recorded in stats and
// processing continues. In dry-run mode validation and rendering happen but
// nothing is sent and the ledger is left untouched.
func (d *Dispatch) Run(ctx context.Context) (domain.DispatchStats, error) {
	var stats domain.DispatchStats

	logger := d.logger.With("run_id", uuid.NewString())
	dryRun := d.cfg.Dispatch.DryRun
	logger.Info("dispatch starting",
		"dry_run", dryRun,
		"send_emails", d.cfg.Email.Enabled,
		"send_sms", d.cfg.SMS.Enabled,
		"min_rating", d.cfg.Dispatch.MinRating)

	contacts, err := d.ledger.Load(ctx)
	if err != nil {
		return stats, fmt.Errorf("load ledger: %w", err)
	}
	stats.TotalRows = len(contacts)

	var auditRecords []domain.ValidationRecord
	for i := range contacts {
		contact := &contacts[i]
		if contact.Contacted {
			stats.AlreadyContacted++
			continue
		}
		if d.cfg.Dispatch.MinRating > 0 && contact.Rating < d.cfg.Dispatch.MinRating {
			stats.SkippedLowRating++
			continue
		}

		stats.Processed++
		auditRecords = append(auditRecords, d.processContact(ctx, logger, contact, &stats)...)
	}

	if path, err := d.audit.Write(auditRecords); err != nil {
		logger.Error("write validation audit", "error", err)
	} else if path != "" {
		logger.Info("validation audit written", "path", path, "records", len(auditRecords))
	}

	if dryRun {
		logger.Info("dispatch complete", "dry_run", true, "note", "ledger untouched")
	} else {
		if err := d.ledger.Rewrite(ctx, contacts); err != nil {
			return stats, fmt.Errorf("rewrite ledger: %w", err)
		}
		logger.Info("dispatch complete", "marked_contacted", stats.MarkedContacted)
	}

	logSummary(logger, stats)
	return stats, nil
}

// processContact handles one ledger row and returns its validation audit
// records. The contacted flag is flipped in place when any send succeeds.
func (d *Dispatch) processContact(ctx context.Context, logger *slog.Logger, contact *domain.Contact, stats *domain.DispatchStats) []domain.ValidationRecord {
	firstName := format.FirstName(contact.FirstName)
	organizerFirst := format.OrganizerFirstName(contact.Organizer)
	emails := contact.CandidateEmails()
	phones := contact.CandidatePhones()

	clog := logger.With("contact", contact.DisplayName(), "interaction_id", contact.InteractionID)
	clog.Info("processing contact",
		"first_name", firstName,
		"organizer", organizerFirst,
		"emails", len(emails),
		"phones", len(phones))

	sent := false
	var records []domain.ValidationRecord

	for _, email := range emails {
		valid := d.validateEmail(ctx, clog, email)
		records = append(records, domain.ValidationRecord{
			ContactName: contact.DisplayName(),
			Email:       email,
			Valid:       valid,
		})
		if !valid {
			stats.EmailsInvalid++
			clog.Info("email invalid, not sending", "email", email)
			continue
		}
		stats.EmailsValid++

		if d.sendEmail(ctx, clog, email, firstName, organizerFirst, stats) {
			sent = true
		}
	}

	for _, phone := range phones {
		if d.sendSMS(ctx, clog, phone, firstName, organizerFirst, stats) {
			sent = true
		}
	}

	if sent {
		contact.Contacted = true
		stats.MarkedContacted++
	}

	return records
}

// validateEmail asks the validation service for a verdict. Only an explicit
// "valid" passes; any other status or a transport failure counts as
// invalid and is never retried.
func (d *Dispatch) validateEmail(ctx context.Context, logger *slog.Logger, email string) bool {
	status, err := d.validator.Validate(ctx, email)
	if err != nil {
		logger.Warn("email validation failed", "email", email, "error", err)
		return false
	}
	logger.Info("email validated", "email", email, "status", status)
	return status == statusSendable
}

func (d *Dispatch) sendEmail(ctx context.Context, logger *slog.Logger, to, firstName, organizerFirst string, stats *domain.DispatchStats) bool {
	if !d.cfg.Email.Enabled {
		logger.Info("email sending disabled, skipping", "email", to)
		return false
	}

	body, err := message.EmailBody(firstName, organizerFirst)
	if err != nil {
		logger.Error("render email body", "error", err)
		stats.EmailsFailed++
		return false
	}
	sender := message.ResolveSender(d.cfg.Email, organizerFirst)
	msg := domain.EmailMessage{
		FromName:  sender.Name,
		FromEmail: sender.Email,
		To:        to,
		BCC:       d.cfg.Email.BCC,
		Subject:   message.EmailSubject(firstName),
		HTML:      body,
	}

	if d.cfg.Dispatch.DryRun {
		logger.Info("dry run, would send email",
			"to", to, "subject", msg.Subject, "from", sender.Name+" <"+sender.Email+">")
		return false
	}

	err = sendWithRetry(ctx, logger, "email", d.cfg.Email.Attempts, func() error {
		return d.email.Send(ctx, msg)
	})
	if err != nil {
		logger.Warn("email send failed", "to", to, "error", err)
		stats.EmailsFailed++
		return false
	}

	logger.Info("email sent", "to", to, "from", sender.Email)
	stats.EmailsSent++
	return true
}

func (d *Dispatch) sendSMS(ctx context.Context, logger *slog.Logger, to, firstName, organizerFirst string, stats *domain.DispatchStats) bool {
	if !d.cfg.SMS.Enabled {
		logger.Info("sms sending disabled, skipping", "phone", to)
		return false
	}

	body, err := message.SMSBody(firstName, organizerFirst)
	if err != nil {
		logger.Error("render sms body", "error", err)
		stats.SMSFailed++
		return false
	}
	msg := domain.SMSMessage{From: d.cfg.SMS.FromPhone, To: to, Body: body}

	if d.cfg.Dispatch.DryRun {
		logger.Info("dry run, would send sms", "to", to)
		return false
	}

	err = sendWithRetry(ctx, logger, "sms", d.cfg.SMS.Attempts, func() error {
		return d.sms.Send(ctx, msg)
	})
	if err != nil {
		logger.Warn("sms send failed", "to", to, "error", err)
		stats.SMSFailed++
		return false
	}

	logger.Info("sms sent", "to", to)
	stats.SMSSent++
	return true
}

// sendWithRetry runs send up to attempts times, stopping early on success
// or context cancellation.
func sendWithRetry(ctx context.Context, logger *slog.Logger, channel string, attempts int, send func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = send(); err == nil {
			if attempt > 1 {
				logger.Info("send succeeded on retry", "channel", channel, "attempt", attempt)
			}
			return nil
		}
		logger.Warn("send attempt failed", "channel", channel, "attempt", attempt, "error", err)
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

func logSummary(logger *slog.Logger, stats domain.DispatchStats) {
	logger.Info("run summary",
		"total_rows", stats.TotalRows,
		"already_contacted", stats.AlreadyContacted,
		"skipped_low_rating", stats.SkippedLowRating,
		"processed", stats.Processed,
		"emails_valid", stats.EmailsValid,
		"emails_invalid", stats.EmailsInvalid,
		"emails_sent", stats.EmailsSent,
		"emails_failed", stats.EmailsFailed,
		"sms_sent", stats.SMSSent,
		"sms_failed", stats.SMSFailed,
		"marked_contacted", stats.MarkedContacted)
}
