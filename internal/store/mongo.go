package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Collection names.
const (
	FormsCollection       = "forms"
	SubmissionsCollection = "submissions"
)

// Mongo stores forms and submissions in two collections. Cascading deletes
// run in a session transaction, which needs a replica set or sharded cluster.
type Mongo struct {
	client      *mongo.Client
	forms       *mongo.Collection
	submissions *mongo.Collection
	owned       bool
}

var _ Store = (*Mongo)(nil)

// ConnectMongo dials uri, makes sure the indexes exist and returns a store
// that disconnects the client on Close.
func ConnectMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("store: ping mongo: %w", err)
	}
	m := NewMongo(client, database)
	m.owned = true
	if err := m.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return m, nil
}

// NewMongo wraps an existing client. The caller keeps ownership of it.
func NewMongo(client *mongo.Client, database string) *Mongo {
	db := client.Database(database)
	return &Mongo{
		client:      client,
		forms:       db.Collection(FormsCollection),
		submissions: db.Collection(SubmissionsCollection),
	}
}

// EnsureIndexes creates the unique formId index and the submission lookups.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.forms.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "formId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "storeId", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("store: create form indexes: %w", err)
	}
	_, err = m.submissions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "formId", Value: 1}}},
		{Keys: bson.D{{Key: "storeId", Value: 1}, {Key: "submittedAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("store: create submission indexes: %w", err)
	}
	return nil
}

func (m *Mongo) CreateForm(ctx context.Context, form model.Form) (model.Form, error) {
	form = form.Clone()
	if form.Fields == nil {
		form.Fields = []model.FieldDescriptor{}
	}
	if _, err := m.forms.InsertOne(ctx, form); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Form{}, fmt.Errorf("%w: form %s already exists", ErrConflict, form.FormID)
		}
		return model.Form{}, fmt.Errorf("store: insert form: %w", err)
	}
	return form, nil
}

func (m *Mongo) GetForm(ctx context.Context, formID string) (model.Form, error) {
	var form model.Form
	err := m.forms.FindOne(ctx, bson.M{"formId": formID}).Decode(&form)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Form{}, fmt.Errorf("%w: form %s", ErrNotFound, formID)
	}
	if err != nil {
		return model.Form{}, fmt.Errorf("store: find form: %w", err)
	}
	return form, nil
}

func (m *Mongo) UpdateForm(ctx context.Context, formID string, update FormUpdate) (model.Form, error) {
	fields := model.CloneFields(update.Fields)
	if fields == nil {
		fields = []model.FieldDescriptor{}
	}
	set := bson.M{"formName": update.FormName, "fields": fields, "updatedAt": update.UpdatedAt}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var form model.Form
	err := m.forms.FindOneAndUpdate(ctx, bson.M{"formId": formID}, bson.M{"$set": set}, opts).Decode(&form)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Form{}, fmt.Errorf("%w: form %s", ErrNotFound, formID)
	}
	if err != nil {
		return model.Form{}, fmt.Errorf("store: update form: %w", err)
	}
	return form, nil
}

func (m *Mongo) DeleteForm(ctx context.Context, formID string) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("store: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := m.forms.DeleteOne(sc, bson.M{"formId": formID})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, fmt.Errorf("%w: form %s", ErrNotFound, formID)
		}
		if _, err := m.submissions.DeleteMany(sc, bson.M{"formId": formID}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("store: delete form: %w", err)
	}
	return nil
}

func storeFilter(storeID string) bson.M {
	if storeID == "" {
		return bson.M{}
	}
	return bson.M{"storeId": storeID}
}

func (m *Mongo) CountForms(ctx context.Context, storeID string) (int64, error) {
	count, err := m.forms.CountDocuments(ctx, storeFilter(storeID))
	if err != nil {
		return 0, fmt.Errorf("store: count forms: %w", err)
	}
	return count, nil
}

func (m *Mongo) ListForms(ctx context.Context, storeID string) ([]model.FormSummary, error) {
	cursor, err := m.forms.Find(ctx, storeFilter(storeID), options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("store: find forms: %w", err)
	}
	var forms []model.Form
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, fmt.Errorf("store: decode forms: %w", err)
	}

	counts, err := m.submissionCounts(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]model.FormSummary, 0, len(forms))
	for _, form := range forms {
		out = append(out, model.FormSummary{Form: form, TotalSubmissions: counts[form.FormID]})
	}
	return out, nil
}

func (m *Mongo) submissionCounts(ctx context.Context, storeID string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: storeFilter(storeID)}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$formId"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	}
	cursor, err := m.submissions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("store: count submissions per form: %w", err)
	}
	var rows []struct {
		FormID string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("store: decode submission counts: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.FormID] = row.Count
	}
	return counts, nil
}

func (m *Mongo) CreateSubmission(ctx context.Context, submission model.Submission) (model.Submission, error) {
	form, err := m.GetForm(ctx, submission.FormID)
	if err != nil {
		return model.Submission{}, err
	}
	if submission.StoreID == "" {
		submission.StoreID = form.StoreID
	}
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	submission.SubmissionData = model.CloneData(submission.SubmissionData)
	if submission.SubmissionData == nil {
		submission.SubmissionData = map[string]string{}
	}
	if _, err := m.submissions.InsertOne(ctx, submission); err != nil {
		return model.Submission{}, fmt.Errorf("store: insert submission: %w", err)
	}
	return submission, nil
}

func (m *Mongo) ListSubmissions(ctx context.Context, storeID string) ([]model.SubmissionView, error) {
	cursor, err := m.submissions.Find(ctx, storeFilter(storeID), options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("store: find submissions: %w", err)
	}
	var submissions []model.Submission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("store: decode submissions: %w", err)
	}
	if len(submissions) == 0 {
		return []model.SubmissionView{}, nil
	}

	ids := make([]string, 0, len(submissions))
	seen := make(map[string]struct{}, len(submissions))
	for _, submission := range submissions {
		if _, ok := seen[submission.FormID]; !ok {
			seen[submission.FormID] = struct{}{}
			ids = append(ids, submission.FormID)
		}
	}
	formCursor, err := m.forms.Find(ctx, bson.M{"formId": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("store: find submission forms: %w", err)
	}
	var forms []model.Form
	if err := formCursor.All(ctx, &forms); err != nil {
		return nil, fmt.Errorf("store: decode submission forms: %w", err)
	}
	byID := make(map[string]model.Form, len(forms))
	for _, form := range forms {
		byID[form.FormID] = form
	}

	out := make([]model.SubmissionView, 0, len(submissions))
	for _, submission := range submissions {
		view := model.SubmissionView{Submission: submission}
		if form, ok := byID[submission.FormID]; ok {
			populated := form
			view.Form = &populated
		}
		out = append(out, view)
	}
	return out, nil
}

func (m *Mongo) CountSubmissions(ctx context.Context, filter SubmissionFilter) (int64, error) {
	query := bson.M{}
	if filter.StoreID != "" {
		query["storeId"] = filter.StoreID
	}
	if filter.FormID != "" {
		query["formId"] = filter.FormID
	}
	window := bson.M{}
	if !filter.From.IsZero() {
		window["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		window["$lt"] = filter.To
	}
	if len(window) > 0 {
		query["submittedAt"] = window
	}
	count, err := m.submissions.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("store: count submissions: %w", err)
	}
	return count, nil
}

// Close disconnects the client when the store dialled it.
func (m *Mongo) Close(ctx context.Context) error {
	if !m.owned {
		return nil
	}
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("store: disconnect mongo: %w", err)
	}
	return nil
}
