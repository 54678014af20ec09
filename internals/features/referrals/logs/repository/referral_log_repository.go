// internals/features/referrals/logs/repository/referral_log_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"referralku_backend/internals/features/referrals/logs/model"
)

var (
	ErrLogNotFound = errors.New("referral log not found")
	// ErrTerminalState: update guarded ditolak karena log sudah purchased/failed.
	ErrTerminalState = errors.New("referral log already in terminal state")
	// ErrOrderIDConflict: log sudah punya gateway order id lain.
	ErrOrderIDConflict = errors.New("referral log already has a different gateway order id")
	// ErrOrderIDTaken: gateway order id sudah dipakai log lain (unique index).
	ErrOrderIDTaken = errors.New("gateway order id already used by another referral log")
	ErrEmptyUpdate  = errors.New("nothing to update")
)

// LogUpdate = partial update bertipe; nil artinya kolom tidak disentuh.
// Guarded=true menolak perpindahan keluar dari status terminal (jalur webhook/sync).
type LogUpdate struct {
	Status             *model.LogStatus
	GatewayOrderID     *string
	FillGatewayOrderID *string // hanya mengisi order_id yang masih NULL
	PaymentType        *string
	PaidAt             *time.Time
	FillPaidAt         *time.Time // hanya mengisi paid_at yang masih NULL
	FailureReason      *string
	Guarded            bool
}

func (u LogUpdate) columns(now time.Time) map[string]any {
	cols := map[string]any{}
	if u.Status != nil {
		cols["status"] = string(*u.Status)
	}
	if u.GatewayOrderID != nil {
		cols["order_id"] = *u.GatewayOrderID
	} else if u.FillGatewayOrderID != nil {
		cols["order_id"] = gorm.Expr("COALESCE(order_id, ?)", *u.FillGatewayOrderID)
	}
	if u.PaymentType != nil {
		cols["payment_type"] = *u.PaymentType
	}
	if u.PaidAt != nil {
		cols["paid_at"] = *u.PaidAt
	} else if u.FillPaidAt != nil {
		cols["paid_at"] = gorm.Expr("COALESCE(paid_at, ?)", *u.FillPaidAt)
	}
	if u.FailureReason != nil {
		cols["failure_reason"] = *u.FailureReason
	}
	if len(cols) > 0 {
		cols["updated_at"] = now
	}
	return cols
}

type ListFilter struct {
	Status       string
	ReferralCode string
	Offset       int
	Limit        int
}

//go:generate mockgen -source=referral_log_repository.go -destination=../../../../mocks/referral_logs/store_mock.go -package=referrallogsmock
type Store interface {
	Create(ctx context.Context, m *model.ReferralLogModel) error
	List(ctx context.Context, f ListFilter) ([]model.ReferralLogModel, int64, error)
	FindByID(ctx context.Context, id int64) (*model.ReferralLogModel, error)
	ApplyUpdate(ctx context.Context, id int64, upd LogUpdate) (*model.ReferralLogModel, error)
	AttachGatewayOrderID(ctx context.Context, id int64, orderID string) error
}

type ReferralLogRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReferralLogRepository(db *gorm.DB) *ReferralLogRepository {
	return &ReferralLogRepository{db: db, now: time.Now}
}

var _ Store = (*ReferralLogRepository)(nil)

func (r *ReferralLogRepository) Create(ctx context.Context, m *model.ReferralLogModel) error {
	if m.Status == "" {
		m.Status = model.LogStatusUnpurchased
	}
	if m.WhatsappClickTime.IsZero() {
		m.WhatsappClickTime = r.now()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ReferralLogRepository) List(ctx context.Context, f ListFilter) ([]model.ReferralLogModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ReferralLogModel{})
	if s := strings.TrimSpace(f.Status); s != "" {
		q = q.Where("status = ?", s)
	}
	if rc := strings.TrimSpace(f.ReferralCode); rc != "" {
		q = q.Where("referral_code = ?", rc)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	var rows []model.ReferralLogModel
	if err := q.Order("created_at DESC").Order("id DESC").
		Offset(f.Offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *ReferralLogRepository) FindByID(ctx context.Context, id int64) (*model.ReferralLogModel, error) {
	var m model.ReferralLogModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ApplyUpdate menjalankan satu UPDATE ter-parameter. Untuk update guarded,
// filter terminal ada di WHERE yang sama sehingga aman terhadap notifikasi paralel.
// RowsAffected 0 dibedakan jadi not found vs terminal lewat satu SELECT lanjutan.
func (r *ReferralLogRepository) ApplyUpdate(ctx context.Context, id int64, upd LogUpdate) (*model.ReferralLogModel, error) {
	cols := upd.columns(r.now())
	if len(cols) == 0 {
		return nil, ErrEmptyUpdate
	}

	q := r.db.WithContext(ctx).Model(&model.ReferralLogModel{}).Where("id = ?", id)
	if upd.Guarded && upd.Status != nil {
		q = q.Where("(status NOT IN ? OR status = ?)", terminalStrings(), string(*upd.Status))
	}
	// order_id tidak pernah ditimpa nilai lain, termasuk lewat override manual.
	if upd.GatewayOrderID != nil {
		q = q.Where("(order_id IS NULL OR order_id = ?)", *upd.GatewayOrderID)
	}

	res := q.Updates(cols)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return nil, ErrOrderIDTaken
	}
	if res.Error != nil {
		return nil, fmt.Errorf("update referral log %d: %w", id, res.Error)
	}

	cur, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 && upd.GatewayOrderID != nil &&
		cur.GatewayOrderID != nil && *cur.GatewayOrderID != *upd.GatewayOrderID {
		return cur, ErrOrderIDConflict
	}
	if res.RowsAffected == 0 && upd.Guarded {
		return cur, ErrTerminalState
	}
	return cur, nil
}

// AttachGatewayOrderID hanya mengisi order_id yang masih kosong (atau sama).
func (r *ReferralLogRepository) AttachGatewayOrderID(ctx context.Context, id int64, orderID string) error {
	res := r.db.WithContext(ctx).Model(&model.ReferralLogModel{}).
		Where("id = ?", id).
		Where("(order_id IS NULL OR order_id = ?)", orderID).
		Updates(map[string]any{
			"order_id":   orderID,
			"updated_at": r.now(),
		})
	if res.Error != nil {
		return fmt.Errorf("attach order id to log %d: %w", id, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return ErrOrderIDConflict
}

func terminalStrings() []string {
	out := make([]string, 0, len(model.TerminalStatuses))
	for _, s := range model.TerminalStatuses {
		out = append(out, string(s))
	}
	return out
}
