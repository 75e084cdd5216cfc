package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/model"
)

func newNotificationFixture() (*fakeAccountRepo, *fakeSender, AccountNotificationUsecase) {
	logger := zerolog.Nop()
	accountRepo := newFakeAccountRepo()
	sender := &fakeSender{}
	return accountRepo, sender, NewAccountNotificationUsecase(accountRepo, sender, &logger)
}

func TestNotifyAccountStatusTransitions(t *testing.T) {
	tests := []struct {
		name       string
		notice     Notice
		wantStatus string
		wantInBody string
	}{
		{name: "suspension", notice: NoticeSuspension, wantStatus: model.AccountSuspended, wantInBody: "suspended"},
		{name: "deletion", notice: NoticeDeletion, wantStatus: model.AccountDeleted, wantInBody: "deleted"},
		{name: "reactivation", notice: NoticeReactivation, wantStatus: model.AccountActive, wantInBody: "reactivated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo, sender, u := newNotificationFixture()
			accountRepo.add(&model.Account{
				Email:  "m@example.com",
				Kind:   model.SubjectMentor,
				Status: model.AccountActive,
			})

			err := u.NotifyAccountStatus(context.Background(), "m@example.com", model.SubjectMentor, tt.notice, "")
			require.NoError(t, err)

			account, err := accountRepo.GetAccountByEmail(context.Background(), "m@example.com", model.SubjectMentor)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, account.Status)

			require.Len(t, sender.sent, 1)
			assert.Contains(t, sender.sent[0].Subject, tt.wantInBody)
		})
	}
}

func TestNotifyAccountStatusUnknownAccount(t *testing.T) {
	_, sender, u := newNotificationFixture()

	err := u.NotifyAccountStatus(context.Background(), "ghost@example.com", model.SubjectUser, NoticeSuspension, "")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Empty(t, sender.sent)
}

func TestNotifyAccountStatusUnknownNotice(t *testing.T) {
	_, _, u := newNotificationFixture()

	err := u.NotifyAccountStatus(context.Background(), "m@example.com", model.SubjectUser, Notice("banhammer"), "")
	assert.ErrorIs(t, err, ErrUnknownNotice)
}
