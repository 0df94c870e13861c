package services

import (
	"context"
	"time"

	model "github.com/Itish41/InsightBoard/models"

	"github.com/stretchr/testify/mock"
)

// FixedTime for consistent time patching
var FixedTime = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

// MockCompleter implements Completer with testify/mock
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockExtractor implements Extractor
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, transcript string) ([]model.ActionItem, error) {
	args := m.Called(ctx, transcript)
	items, _ := args.Get(0).([]model.ActionItem)
	return items, args.Error(1)
}

func (m *MockExtractor) TestConnection(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

// MockStore implements ActionItemStore
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateOne(ctx context.Context, item model.ActionItem) (model.ActionItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(model.ActionItem), args.Error(1)
}

func (m *MockStore) CreateMany(ctx context.Context, items []model.ActionItem) ([]model.ActionItem, error) {
	args := m.Called(ctx, items)
	saved, _ := args.Get(0).([]model.ActionItem)
	return saved, args.Error(1)
}

func (m *MockStore) GetAll(ctx context.Context) ([]model.ActionItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.ActionItem)
	return items, args.Error(1)
}

func (m *MockStore) UpdateOne(ctx context.Context, id string, patch model.ActionItemPatch) (*model.ActionItem, error) {
	args := m.Called(ctx, id, patch)
	item, _ := args.Get(0).(*model.ActionItem)
	return item, args.Error(1)
}

func (m *MockStore) DeleteOne(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) TestConnection(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

// MockIndex implements ActionItemIndex
type MockIndex struct {
	mock.Mock
}

func (m *MockIndex) IndexItems(ctx context.Context, items []model.ActionItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *MockIndex) DeleteItem(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIndex) Search(ctx context.Context, query string) ([]model.ActionItem, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]model.ActionItem)
	return items, args.Error(1)
}

// MockArchiver implements TranscriptArchiver
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, transcript string) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}

// MockDB implements gormConn with testify/mock
type MockDB struct {
	mock.Mock
}

func (m *MockDB) WithContext(ctx context.Context) gormConn {
	m.Called(ctx)
	return m
}

func (m *MockDB) Model(value interface{}) gormConn {
	m.Called(value)
	return m
}

func (m *MockDB) Where(query interface{}, args ...interface{}) gormConn {
	m.Called(query, args)
	return m
}

func (m *MockDB) Order(value interface{}) gormConn {
	m.Called(value)
	return m
}

func (m *MockDB) Create(value interface{}) gormConn {
	m.Called(value)
	return m
}

func (m *MockDB) Find(dest interface{}, conds ...interface{}) gormConn {
	m.Called(dest, conds)
	return m
}

func (m *MockDB) First(dest interface{}, conds ...interface{}) gormConn {
	m.Called(dest, conds)
	return m
}

func (m *MockDB) Updates(values interface{}) gormConn {
	m.Called(values)
	return m
}

func (m *MockDB) Delete(value interface{}, conds ...interface{}) gormConn {
	m.Called(value, conds)
	return m
}

func (m *MockDB) Error() error {
	return m.Called().Error(0)
}

func (m *MockDB) RowsAffected() int64 {
	return m.Called().Get(0).(int64)
}

func (m *MockDB) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
