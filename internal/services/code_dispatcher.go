package services

import (
	"fmt"
	"log"

	"instaclone/internal/models"
	"instaclone/internal/utils"
)

// CodeNotifier hands a freshly created confirmation code off for delivery.
// The request path never blocks on it.
type CodeNotifier interface {
	NotifyCode(user *models.User, code string)
}

type codeJob struct {
	authType models.AuthType
	to       string
	code     string
}

// CodeDispatcher is the background delivery worker: email for the email
// channel, SMS for the phone channel. Delivery failures never reach the HTTP
// response that already went out, so they are logged and alerted instead.
type CodeDispatcher struct {
	jobs   chan codeJob
	emails EmailService
	sms    *utils.SMSClient
	alerts *TelegramService
}

func NewCodeDispatcher(emails EmailService, sms *utils.SMSClient, alerts *TelegramService) *CodeDispatcher {
	return &CodeDispatcher{
		jobs:   make(chan codeJob, 64),
		emails: emails,
		sms:    sms,
		alerts: alerts,
	}
}

func (d *CodeDispatcher) NotifyCode(user *models.User, code string) {
	job := codeJob{authType: user.AuthType, code: code}
	if user.AuthType == models.AuthTypePhone {
		job.to = user.PhoneNumber
	} else {
		job.to = user.Email
	}
	select {
	case d.jobs <- job:
	default:
		// queue full: drop rather than stall the request path
		d.fail(job, fmt.Errorf("dispatch queue full"))
	}
}

// Run consumes jobs until the channel is closed. Start it once from app.Run.
func (d *CodeDispatcher) Run() {
	for job := range d.jobs {
		var err error
		switch job.authType {
		case models.AuthTypePhone:
			_, err = d.sms.SendSMS(job.to, fmt.Sprintf("Instaclone verification code: %s", job.code))
		default:
			err = d.emails.SendVerificationEmail(job.to, job.code)
		}
		if err != nil {
			d.fail(job, err)
			continue
		}
		log.Printf("[notify][%s][ok] to=%s", job.authType, job.to)
	}
}

func (d *CodeDispatcher) Close() {
	close(d.jobs)
}

func (d *CodeDispatcher) fail(job codeJob, err error) {
	log.Printf("[notify][%s][err] to=%s: %v", job.authType, job.to, err)
	if alertErr := d.alerts.Alert(fmt.Sprintf("⚠️ code delivery failed (%s to %s): %v", job.authType, job.to, err)); alertErr != nil {
		log.Printf("[notify][alert][err] %v", alertErr)
	}
}
