package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/model"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/repository"
	"github.com/onlymentors/account-recovery-api/shared/mailer"
)

// Notice identifies an account lifecycle notification kind.
type Notice string

const (
	NoticeSuspension   Notice = "suspension"
	NoticeDeletion     Notice = "deletion"
	NoticeReactivation Notice = "reactivation"
)

// AccountNotificationUsecase applies an administrator-driven account status
// change and sends the matching notification.
type AccountNotificationUsecase interface {
	NotifyAccountStatus(ctx context.Context, email string, kind model.SubjectKind, notice Notice, reason string) error
}

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUnknownNotice   = errors.New("unknown account notice")
)

type accountNotificationUsecase struct {
	accountRepo repository.AccountRepository
	sender      NotificationSender
	logger      *zerolog.Logger
}

// NewAccountNotificationUsecase creates a new instance of AccountNotificationUsecase.
func NewAccountNotificationUsecase(
	accountRepo repository.AccountRepository,
	sender NotificationSender,
	logger *zerolog.Logger,
) AccountNotificationUsecase {
	return &accountNotificationUsecase{
		accountRepo: accountRepo,
		sender:      sender,
		logger:      logger,
	}
}

func (u *accountNotificationUsecase) NotifyAccountStatus(
	ctx context.Context,
	email string,
	kind model.SubjectKind,
	notice Notice,
	reason string,
) error {
	var (
		status  string
		subject string
		html    string
		text    string
	)

	switch notice {
	case NoticeSuspension:
		status = model.AccountSuspended
		subject, html, text = mailer.SuspensionEmail(reason)
	case NoticeDeletion:
		status = model.AccountDeleted
		subject, html, text = mailer.DeletionEmail()
	case NoticeReactivation:
		status = model.AccountActive
		subject, html, text = mailer.ReactivationEmail()
	default:
		return ErrUnknownNotice
	}

	account, err := u.accountRepo.GetAccountByEmail(ctx, email, kind)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return err
	}

	if err := u.accountRepo.UpdateStatus(ctx, account.ID.Hex(), status); err != nil {
		return err
	}

	outcome := u.sender.Send(ctx, mailer.Email{
		To:       []string{email},
		Subject:  subject,
		HTMLBody: html,
		Body:     text,
	})

	u.logger.Info().
		Str("notice", string(notice)).
		Str("channel", string(outcome.Channel)).
		Msg("account status notification dispatched")

	return nil
}
