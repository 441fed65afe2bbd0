package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adsc/report-system/internal/core/domain"
)

const reportsCollection = "reports"

// ReportRepository stores reports with amounts in minor units.
type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(reportsCollection)}
}

type mongoLineItem struct {
	ID     string `bson:"id"`
	Name   string `bson:"name"`
	Amount int64  `bson:"amount"`
}

type mongoReport struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Date              string             `bson:"date"`
	Services          []mongoLineItem    `bson:"services"`
	Expenses          []mongoLineItem    `bson:"expenses"`
	TotalServices     int64              `bson:"total_services"`
	TotalExpenses     int64              `bson:"total_expenses"`
	NetProfit         int64              `bson:"net_profit"`
	OnlinePayment     int64              `bson:"online_payment"`
	CashPayment       int64              `bson:"cash_payment"`
	CreatedBy         string             `bson:"created_by"`
	CreatedByUsername string             `bson:"created_by_username"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func toMongoItems(items []domain.LineItem) []mongoLineItem {
	out := make([]mongoLineItem, 0, len(items))
	for _, it := range items {
		out = append(out, mongoLineItem{ID: it.ID, Name: it.Name, Amount: int64(it.Amount)})
	}
	return out
}

func fromMongoItems(items []mongoLineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.LineItem{ID: it.ID, Name: it.Name, Amount: domain.Money(it.Amount)})
	}
	return out
}

func toMongoReport(r *domain.Report) mongoReport {
	doc := mongoReport{
		Date:              r.Date,
		Services:          toMongoItems(r.Services),
		Expenses:          toMongoItems(r.Expenses),
		TotalServices:     int64(r.TotalServices),
		TotalExpenses:     int64(r.TotalExpenses),
		NetProfit:         int64(r.NetProfit),
		OnlinePayment:     int64(r.OnlinePayment),
		CashPayment:       int64(r.CashPayment),
		CreatedBy:         r.CreatedBy,
		CreatedByUsername: r.CreatedByUsername,
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
	}
	if oid, ok := objectID(r.ID); ok {
		doc.ID = oid
	}
	return doc
}

func (m mongoReport) toDomain() domain.Report {
	return domain.Report{
		ID:                m.ID.Hex(),
		Date:              m.Date,
		Services:          fromMongoItems(m.Services),
		Expenses:          fromMongoItems(m.Expenses),
		TotalServices:     domain.Money(m.TotalServices),
		TotalExpenses:     domain.Money(m.TotalExpenses),
		NetProfit:         domain.Money(m.NetProfit),
		OnlinePayment:     domain.Money(m.OnlinePayment),
		CashPayment:       domain.Money(m.CashPayment),
		CreatedBy:         m.CreatedBy,
		CreatedByUsername: m.CreatedByUsername,
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
}

// Create inserts a new report document.
func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoReport(report)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoReport
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

// reportQuery translates a filter. Dates are YYYY-MM-DD strings, so range
// bounds compare lexically.
func reportQuery(f domain.ReportFilter) bson.M {
	q := bson.M{}
	if f.CreatedBy != "" {
		q["created_by"] = f.CreatedBy
	}
	switch {
	case f.Date != "":
		q["date"] = f.Date
	case f.DateFrom != "" || f.DateTo != "":
		r := bson.M{}
		if f.DateFrom != "" {
			r["$gte"] = f.DateFrom
		}
		if f.DateTo != "" {
			r["$lte"] = f.DateTo
		}
		q["date"] = r
	}
	return q
}

// List returns matching reports, newest date first.
func (r *ReportRepository) List(ctx context.Context, f domain.ReportFilter) ([]domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, reportQuery(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	var docs []mongoReport
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	out := make([]domain.Report, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ReportRepository) Update(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	oid, ok := objectID(report.ID)
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoReport(report)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrReportNotFound
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrReportNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the reports collection.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "date", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
