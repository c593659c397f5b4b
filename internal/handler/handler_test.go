package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/dto/respond"
	"huoban_chat_server/internal/infrastructure/middleware"
	"huoban_chat_server/internal/service"
	"huoban_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := InitTrans("zh"); err != nil {
		panic(err)
	}
}

// stubAuthService 按需覆写单个方法的认证服务桩
type stubAuthService struct {
	service.AuthService
	loginFn    func(req *request.LoginRequest) (*respond.LoginRespond, error)
	registerFn func(req *request.RegisterRequest) (*respond.RegisterRespond, error)
}

func (s *stubAuthService) Login(ctx context.Context, req *request.LoginRequest) (*respond.LoginRespond, error) {
	return s.loginFn(req)
}

func (s *stubAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*respond.RegisterRespond, error) {
	return s.registerFn(req)
}

// stubRoomService 房间服务桩
type stubRoomService struct {
	service.RoomService
	createFn func(ownerUuid string, req *request.CreateRoomRequest) (*respond.RoomRespond, error)
}

func (s *stubRoomService) CreateRoom(ctx context.Context, ownerUuid string, req *request.CreateRoomRequest) (*respond.RoomRespond, error) {
	return s.createFn(ownerUuid, req)
}

// doJSON 发起 JSON 请求并解析统一响应信封
func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (int, ResponseData) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	var resp ResponseData
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return recorder.Code, resp
}

func TestLoginHandler(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(req *request.LoginRequest) (*respond.LoginRespond, error) {
			if req.Password != "password123" {
				return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
			}
			return &respond.LoginRespond{Uuid: "U1", Username: req.Username, AccessToken: "at", RefreshToken: "rt"}, nil
		},
	}
	engine := gin.New()
	engine.POST("/api/auth/login", NewAuthHandler(stub).Login)

	t.Run("success envelope", func(t *testing.T) {
		status, resp := doJSON(t, engine, http.MethodPost, "/api/auth/login",
			request.LoginRequest{Username: "alice", Password: "password123"})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, errorx.CodeSuccess, resp.Code)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "alice", data["username"])
	})

	t.Run("business error carries code", func(t *testing.T) {
		_, resp := doJSON(t, engine, http.MethodPost, "/api/auth/login",
			request.LoginRequest{Username: "alice", Password: "wrongpass"})
		assert.Equal(t, errorx.CodeInvalidPassword, resp.Code)
		assert.Nil(t, resp.Data)
	})

	t.Run("validation error translated per field", func(t *testing.T) {
		_, resp := doJSON(t, engine, http.MethodPost, "/api/auth/login",
			map[string]string{"username": "alice"})
		assert.Equal(t, errorx.CodeInvalidParam, resp.Code)
		fields := resp.Msg.(map[string]any)
		assert.Contains(t, fields, "password")
	})
}

func TestRegisterHandlerParamRules(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(req *request.RegisterRequest) (*respond.RegisterRespond, error) {
			return &respond.RegisterRespond{Uuid: "U1", Username: req.Username}, nil
		},
	}
	engine := gin.New()
	engine.POST("/api/auth/register", NewAuthHandler(stub).Register)

	t.Run("short username rejected before service", func(t *testing.T) {
		_, resp := doJSON(t, engine, http.MethodPost, "/api/auth/register",
			map[string]string{"username": "ab", "password": "password123"})
		assert.Equal(t, errorx.CodeInvalidParam, resp.Code)
	})

	t.Run("bad email rejected", func(t *testing.T) {
		_, resp := doJSON(t, engine, http.MethodPost, "/api/auth/register",
			map[string]string{"username": "alice", "email": "not-an-email", "password": "password123"})
		assert.Equal(t, errorx.CodeInvalidParam, resp.Code)
	})

	t.Run("valid payload passes through", func(t *testing.T) {
		_, resp := doJSON(t, engine, http.MethodPost, "/api/auth/register",
			map[string]string{"username": "alice", "password": "password123"})
		assert.Equal(t, errorx.CodeSuccess, resp.Code)
	})
}

func TestCreateRoomHandlerUsesContextUser(t *testing.T) {
	stub := &stubRoomService{
		createFn: func(ownerUuid string, req *request.CreateRoomRequest) (*respond.RoomRespond, error) {
			return &respond.RoomRespond{Slug: "general", Name: req.Name, OwnerUuid: ownerUuid}, nil
		},
	}
	engine := gin.New()
	// 模拟 JWT 中间件注入的用户
	engine.POST("/api/rooms", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "U-alice")
	}, NewRoomHandler(stub).Create)

	_, resp := doJSON(t, engine, http.MethodPost, "/api/rooms",
		request.CreateRoomRequest{Name: "General", RoomType: "public"})
	assert.Equal(t, errorx.CodeSuccess, resp.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "U-alice", data["owner_uuid"])
}

func TestRoomTypeValidation(t *testing.T) {
	stub := &stubRoomService{
		createFn: func(ownerUuid string, req *request.CreateRoomRequest) (*respond.RoomRespond, error) {
			return &respond.RoomRespond{Slug: "x"}, nil
		},
	}
	engine := gin.New()
	engine.POST("/api/rooms", NewRoomHandler(stub).Create)

	_, resp := doJSON(t, engine, http.MethodPost, "/api/rooms",
		map[string]string{"name": "General", "room_type": "secret"})
	assert.Equal(t, errorx.CodeInvalidParam, resp.Code)
}
