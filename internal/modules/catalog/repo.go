package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MarceliJankowski/pizza-project/internal/shared/slug"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// ListActive loads every active product with its groups, options and
// images in display order.
func (r *Repo) ListActive(ctx context.Context) ([]Product, error) {
	var items []Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("status = ?", "active").
		Preload("Groups", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, code ASC") }).
		Preload("Groups.Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, code ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at ASC, code ASC").
		Find(&items).Error
	return items, err
}

// GetByCode loads one product with its full option tree, any status.
// The running server resolves products from the in-memory snapshot; this
// exists for the seed tool's replace path.
func (r *Repo) GetByCode(ctx context.Context, code string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("code = ?", code).
		Preload("Groups").
		Preload("Groups.Options").
		Preload("Images").
		First(&p).Error
	return p, err
}

var ErrDuplicateCode = errors.New("product code already exists")

// CreateProduct inserts a product with its full option tree. Used by the
// seed tool only.
func (r *Repo) CreateProduct(ctx context.Context, p Product) (Product, error) {
	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Slug == "" {
		p.Slug = slug.FromName(p.Name)
	}
	if p.Status == "" {
		p.Status = "active"
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	for gi := range p.Groups {
		g := &p.Groups[gi]
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		g.ProductID = p.ID
		g.Position = gi
		g.CreatedAt = now
		for oi := range g.Options {
			o := &g.Options[oi]
			if o.ID == "" {
				o.ID = uuid.NewString()
			}
			o.GroupID = g.ID
			o.Position = oi
			o.CreatedAt = now
		}
	}
	for ii := range p.Images {
		im := &p.Images[ii]
		if im.ID == "" {
			im.ID = uuid.NewString()
		}
		im.ProductID = p.ID
		im.Position = ii
		im.CreatedAt = now
	}

	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return Product{}, ErrDuplicateCode
		}
		return Product{}, err
	}
	return p, nil
}

// DeleteByCode removes a product with its groups, options and image
// rows. A missing code is not an error.
func (r *Repo) DeleteByCode(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Product
		err := tx.Where("code = ?", code).Preload("Groups").First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		groupIDs := make([]string, 0, len(p.Groups))
		for _, g := range p.Groups {
			groupIDs = append(groupIDs, g.ID)
		}
		if len(groupIDs) > 0 {
			if err := tx.Where("group_id IN ?", groupIDs).Delete(&Option{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&OptionGroup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}
