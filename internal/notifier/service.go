package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"lokatiket/internal/logger"
	"lokatiket/internal/metrics"
	"lokatiket/internal/user"
	"lokatiket/internal/withdrawal"

	"github.com/redis/go-redis/v9"
)

const queueKey = "emails"

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues seller emails on Redis and drains the queue in a
// background worker. Queue failures are logged and swallowed so a
// broken mail path never blocks a withdrawal transition.
type Service struct {
	redis    *redis.Client
	users    user.Repository
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(users user.Repository, fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		users:    users,
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, to, name, emailType, subject, body string) error {
	job := EmailJob{
		To:      to,
		Name:    name,
		Type:    emailType,
		Subject: subject,
		Body:    body,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", to, err)
		return err
	}

	logger.Infof("Email queued: %s to %s", subject, to)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("notifier started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notifier stopped")
			return
		default:
			s.processNext(ctx)
			metrics.EmailQueueLength.Set(float64(s.QueueLength(ctx)))
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)

		if job.Tries < 3 {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after 3 attempts", job.To)
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), queueKey+":failed", data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// WithdrawalReviewed tells the seller their request was approved or
// rejected. Lookup or queue failures are logged and dropped.
func (s *Service) WithdrawalReviewed(ctx context.Context, req *withdrawal.Request) {
	seller, err := s.users.FindByID(ctx, req.SellerID)
	if err != nil {
		logger.Errorf("Failed to load seller %d for withdrawal email: %v", req.SellerID, err)
		return
	}

	var subject, body string
	switch req.Status {
	case withdrawal.StatusApproved:
		subject = "Penarikan Dana Disetujui"
		body = fmt.Sprintf(`Halo %s,

Permintaan penarikan dana Anda sebesar Rp%d telah disetujui dan sedang diproses.

Bank: %s
Nomor Rekening: %s

- Tim LokaTiket`, seller.Name, req.Amount, req.BankName, req.AccountNumber)
	case withdrawal.StatusRejected:
		subject = "Penarikan Dana Ditolak"
		body = fmt.Sprintf(`Halo %s,

Permintaan penarikan dana Anda sebesar Rp%d ditolak.

Alasan: %s

Dana Anda tetap tersedia untuk penarikan berikutnya.

- Tim LokaTiket`, seller.Name, req.Amount, req.AdminNotes)
	default:
		return
	}

	_ = s.Send(ctx, seller.Email, seller.Name, "withdrawal_reviewed", subject, body)
}

// WithdrawalPaid tells the seller the transfer went out.
func (s *Service) WithdrawalPaid(ctx context.Context, req *withdrawal.Request) {
	seller, err := s.users.FindByID(ctx, req.SellerID)
	if err != nil {
		logger.Errorf("Failed to load seller %d for withdrawal email: %v", req.SellerID, err)
		return
	}

	subject := "Dana Telah Ditransfer"
	body := fmt.Sprintf(`Halo %s,

Dana sebesar Rp%d telah ditransfer ke rekening Anda.

Bank: %s
Nomor Rekening: %s

- Tim LokaTiket`, seller.Name, req.Amount, req.BankName, req.AccountNumber)

	_ = s.Send(ctx, seller.Email, seller.Name, "withdrawal_paid", subject, body)
}
