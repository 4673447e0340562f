// Command seed wipes the database and fills it with demo data: one user per
// role, customers across every region, and cases, transactions and audit
// entries referencing them.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"kycdesk/internal/config"
	"kycdesk/internal/logging"
	"kycdesk/internal/models"
	"kycdesk/internal/repositories"
	"kycdesk/internal/repositories/cache"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoPassword = "password123"
	customers    = 50
	cases        = 60
	transactions = 100
	auditEntries = 40
)

var (
	firstNames = []string{"Amina", "Lucas", "Sofia", "Omar", "Mei", "Kwame", "Elena", "Raj", "Chloe", "Diego", "Fatima", "Noah", "Yuki", "Zanele", "Liam"}
	lastNames  = []string{"Haddad", "Martin", "Rossi", "Farouk", "Chen", "Mensah", "Novak", "Patel", "Dubois", "Silva", "Khan", "Smith", "Tanaka", "Dlamini", "Murphy"}
	actions    = []string{"Approved KYC case", "Rejected KYC case", "Viewed transaction", "Exported report", "Updated user profile", "Reset KYC case"}
)

type staffUser struct {
	name   string
	email  string
	role   models.Role
	region string
}

var staff = []staffUser{
	{"Global Admin", "global@kycdesk.io", models.RoleGlobalAdmin, models.RegionGlobal},
	{"Regional Admin", "regional@kycdesk.io", models.RoleRegionalAdmin, models.RegionEU},
	{"Sending Partner", "sender@kycdesk.io", models.RoleSendingPartner, models.RegionNA},
	{"Receiving Partner", "receiver@kycdesk.io", models.RoleReceivingPartner, models.RegionMENA},
}

func main() {
	config.LoadEnv()
	if err := run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

// run resets and seeds the database. Every opened connection is closed before
// it returns, and close failures are joined into the result.
func run(ctx context.Context) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Init(cfg.Log)

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if cerr := repositories.Close(db); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close database: %w", cerr))
		}
	}()

	if err := repositories.ResetDatabase(db); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := seed(ctx, db, rng); err != nil {
		return err
	}
	log.Info().Msg("database seeded")

	// cached identities point at ids that no longer exist
	cacheService := cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.Redis.UserTTL)
	defer func() {
		if cerr := cacheService.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close redis: %w", cerr))
		}
	}()
	n, cerr := cacheService.InvalidateAllUsers(ctx)
	if cerr != nil {
		// the cache expires on its own; a stale entry is not fatal
		log.Warn().Err(cerr).Msg("failed to clear user cache")
		return nil
	}
	log.Info().Int("keys", n).Msg("user cache cleared")
	return nil
}

func seed(ctx context.Context, db *gorm.DB, rng *rand.Rand) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staffUsers []models.User
		for _, s := range staff {
			staffUsers = append(staffUsers, models.User{
				Name: s.name, Email: s.email, Password: string(hash), Role: s.role, Region: s.region,
			})
		}
		if err := tx.Create(&staffUsers).Error; err != nil {
			return fmt.Errorf("create staff: %w", err)
		}

		people := make([]models.User, 0, customers)
		for i := 0; i < customers; i++ {
			first := pick(rng, firstNames)
			last := pick(rng, lastNames)
			phone := fmt.Sprintf("+1555%07d", rng.Intn(10_000_000))
			people = append(people, models.User{
				Name:     first + " " + last,
				Email:    fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
				Password: string(hash),
				Role:     models.RoleSendingPartner,
				Region:   pick(rng, models.CustomerRegions),
				Phone:    &phone,
			})
		}
		if err := tx.Create(&people).Error; err != nil {
			return fmt.Errorf("create customers: %w", err)
		}

		statuses := []models.KYCStatus{models.KYCStatusPending, models.KYCStatusApproved, models.KYCStatusRejected}
		kycCases := make([]models.KYCCase, 0, cases)
		for i := 0; i < cases; i++ {
			owner := people[rng.Intn(len(people))]
			status := pick(rng, statuses)
			c := models.KYCCase{
				UserID: owner.ID,
				Status: status,
				// snapshot of the owner's region at creation
				Region: owner.Region,
				Documents: models.Documents{
					IDFront:        fmt.Sprintf("/static/docs/%d_front.jpg", i),
					IDBack:         fmt.Sprintf("/static/docs/%d_back.jpg", i),
					ProofOfAddress: fmt.Sprintf("/static/docs/%d_address.pdf", i),
				},
				Notes: pq.StringArray{},
			}
			if status == models.KYCStatusRejected {
				c.Reason = "Document unreadable"
			}
			kycCases = append(kycCases, c)
		}
		if err := tx.Create(&kycCases).Error; err != nil {
			return fmt.Errorf("create kyc cases: %w", err)
		}

		txStatuses := []models.TransactionStatus{models.TransactionCompleted, models.TransactionPending, models.TransactionFailed}
		currencies := []string{models.CurrencyUSD, models.CurrencyUSDC}
		now := time.Now()
		txs := make([]models.Transaction, 0, transactions)
		for i := 0; i < transactions; i++ {
			si := rng.Intn(len(people))
			ri := rng.Intn(len(people) - 1)
			if ri >= si {
				ri++
			}
			sender := people[si]
			txs = append(txs, models.Transaction{
				SenderID:   sender.ID,
				ReceiverID: people[ri].ID,
				Amount:     decimal.NewFromInt(int64(rng.Intn(500_000) + 100)).Shift(-2),
				Currency:   pick(rng, currencies),
				Status:     pick(rng, txStatuses),
				Region:     sender.Region,
				Timestamp:  now.Add(-time.Duration(rng.Int63n(int64(30 * 24 * time.Hour)))),
			})
		}
		if err := tx.Create(&txs).Error; err != nil {
			return fmt.Errorf("create transactions: %w", err)
		}

		admins := staffUsers[:2]
		entries := make([]models.AuditLog, 0, auditEntries)
		for i := 0; i < auditEntries; i++ {
			actor := admins[rng.Intn(len(admins))]
			region := actor.Region
			if actor.Role == models.RoleGlobalAdmin {
				region = pick(rng, models.CustomerRegions)
			}
			status := models.AuditSuccess
			if rng.Intn(5) == 0 {
				status = models.AuditFailure
			}
			entries = append(entries, models.AuditLog{
				UserID:    actor.ID,
				Action:    pick(rng, actions),
				Region:    region,
				Status:    status,
				Timestamp: now.Add(-time.Duration(rng.Int63n(int64(30 * 24 * time.Hour)))),
			})
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("create audit logs: %w", err)
		}

		log.Info().
			Int("staff", len(staffUsers)).
			Int("customers", len(people)).
			Int("kyc_cases", len(kycCases)).
			Int("transactions", len(txs)).
			Int("audit_logs", len(entries)).
			Msg("seeded records")
		return nil
	})
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
