package service

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"huoban_chat_server/internal/dao/mysql"
	"huoban_chat_server/internal/dao/mysql/repository"
	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/model"
	"huoban_chat_server/pkg/constants"
	"huoban_chat_server/pkg/errorx"
	"huoban_chat_server/pkg/util/jwt"
	"huoban_chat_server/pkg/util/random"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// dbCounter 给每个测试独立的内存库命名
var dbCounter int64

// newTestRepos 基于 SQLite 内存库构建数据层
func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))
	return repository.NewRepositories(db)
}

// fakeCache 内存缓存实现，异步任务同步执行，保证测试确定性
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeCache) GetOrError(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	if !ok {
		return "", errorx.New(errorx.CodeNotFound, "缓存键不存在")
	}
	return value, nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			delete(f.data, key)
		}
	}
	return nil
}

func (f *fakeCache) SubmitTask(action func()) {
	action()
}

// fakeMail 记录发送过的邮件
type fakeMail struct {
	mu   sync.Mutex
	sent []string // "to|subject"
}

func (f *fakeMail) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

func (f *fakeMail) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// capturePublisher 记录推送过的事件
type capturePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	room    string
	payload []byte
}

func (p *capturePublisher) Publish(roomSlug string, payload []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{room: roomSlug, payload: payload})
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// testEnv 服务层测试环境
type testEnv struct {
	repos     *repository.Repositories
	cache     *fakeCache
	mail      *fakeMail
	publisher *capturePublisher
	staticDir string
	svc       *Services
}

// newTestEnv 构建完整的服务层测试环境
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	jwt.Init("test-secret-for-service-tests", 15, 168)

	env := &testEnv{
		repos:     newTestRepos(t),
		cache:     newFakeCache(),
		mail:      &fakeMail{},
		publisher: &capturePublisher{},
		staticDir: t.TempDir(),
	}
	env.svc = NewServices(Options{
		Repos:           env.repos,
		Cache:           env.cache,
		Mail:            env.mail,
		Publisher:       env.publisher,
		StaticFilePath:  env.staticDir,
		PresenceWindow:  time.Duration(constants.PRESENCE_STALE_MINUTE) * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
	})
	return env
}

// mustRegister 注册测试用户并返回 uuid
func (env *testEnv) mustRegister(t *testing.T, username string) string {
	t.Helper()
	resp, err := env.svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return resp.Uuid
}

// mustRegisterAdmin 注册管理员并返回 uuid
func (env *testEnv) mustRegisterAdmin(t *testing.T, username string) string {
	t.Helper()
	user := &model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(13),
		Username:    username,
		Email:       username + "@example.com",
		RawPassword: "password123",
		IsAdmin:     1,
	}
	require.NoError(t, env.repos.User.Create(user))
	return user.Uuid
}

// mustCreateRoom 创建测试房间
func (env *testEnv) mustCreateRoom(t *testing.T, ownerUuid, name, roomType string) *model.ChatRoom {
	t.Helper()
	_, err := env.svc.Room.CreateRoom(context.Background(), ownerUuid, &request.CreateRoomRequest{
		Name:     name,
		RoomType: roomType,
	})
	require.NoError(t, err)
	room, err := env.repos.Room.FindBySlug(slugify(name))
	require.NoError(t, err)
	return room
}

// mustSendText 发送文本消息并返回消息 ID
func (env *testEnv) mustSendText(t *testing.T, userUuid, slug, content string) uint {
	t.Helper()
	resp, err := env.svc.Message.SendMessage(context.Background(), userUuid, slug, content, nil)
	require.NoError(t, err)
	return resp.Id
}

// makeFileHeader 构造 multipart 附件头，用于附件上传测试
func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(data)) + 10240)
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
