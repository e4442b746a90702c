package user

import (
	"testing"

	"campus_link_server/internal/dao/mysql/repository"
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/model"
	"campus_link_server/internal/testfakes"
	"campus_link_server/pkg/errorx"
	"campus_link_server/pkg/util/jwt"
)

func TestMain(m *testing.M) {
	jwt.Init("test-secret", 15, 168)
	m.Run()
}

func newTestService() (*userInfoService, *testfakes.UserRepo) {
	userRepo := testfakes.NewUserRepo()
	repos := repository.NewRepositoriesFrom(userRepo, nil, nil, nil, nil)
	return NewUserService(repos, testfakes.NewCache()), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()

	reg, err := svc.Register(request.RegisterRequest{
		Telephone: "13800001111",
		Password:  "secret123",
		Nickname:  "小王",
	})
	if err != nil {
		t.Fatal(err)
	}
	if reg.Uuid == "" || reg.AccessToken == "" || reg.RefreshToken == "" {
		t.Fatalf("incomplete register respond: %+v", reg)
	}

	// 重复注册同一手机号
	_, err = svc.Register(request.RegisterRequest{
		Telephone: "13800001111",
		Password:  "secret123",
		Nickname:  "小王二号",
	})
	if errorx.GetCode(err) != errorx.CodeUserExist {
		t.Fatalf("duplicate telephone: code = %d, want CodeUserExist", errorx.GetCode(err))
	}

	login, err := svc.Login(request.LoginRequest{Telephone: "13800001111", Password: "secret123"})
	if err != nil {
		t.Fatal(err)
	}
	if login.Uuid != reg.Uuid {
		t.Fatalf("login uuid = %s, want %s", login.Uuid, reg.Uuid)
	}

	_, err = svc.Login(request.LoginRequest{Telephone: "13800001111", Password: "wrongpass"})
	if errorx.GetCode(err) != errorx.CodeInvalidPassword {
		t.Fatalf("wrong password: code = %d, want CodeInvalidPassword", errorx.GetCode(err))
	}

	_, err = svc.Login(request.LoginRequest{Telephone: "13900002222", Password: "secret123"})
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("unknown telephone: code = %d, want CodeUserNotExist", errorx.GetCode(err))
	}
}

func TestRegisterInvalidTelephone(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(request.RegisterRequest{
		Telephone: "12345",
		Password:  "secret123",
		Nickname:  "小王",
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}
}

// 刷新令牌轮换：旧 Refresh Token 在换发后立即失效
func TestRefreshTokenRotation(t *testing.T) {
	svc, _ := newTestService()
	reg, err := svc.Register(request.RegisterRequest{
		Telephone: "13800003333",
		Password:  "secret123",
		Nickname:  "小李",
	})
	if err != nil {
		t.Fatal(err)
	}

	refreshed, err := svc.RefreshToken(reg.RefreshToken)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("refresh must issue a new token pair")
	}

	// 旧令牌的 TokenID 已被覆盖
	if _, err := svc.RefreshToken(reg.RefreshToken); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("stale refresh token: code = %d, want CodeUnauthorized", errorx.GetCode(err))
	}

	// Access Token 不能当 Refresh Token 用
	if _, err := svc.RefreshToken(refreshed.AccessToken); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("access token as refresh: code = %d, want CodeUnauthorized", errorx.GetCode(err))
	}
}

func TestGetAndUpdateUserInfo(t *testing.T) {
	svc, userRepo := newTestService()
	_ = userRepo.Create(&model.UserInfo{Uuid: "U1", Nickname: "小张", Telephone: "13800004444"})

	info, err := svc.GetUserInfo("U1")
	if err != nil {
		t.Fatal(err)
	}
	if info.Nickname != "小张" {
		t.Fatalf("nickname = %s, want 小张", info.Nickname)
	}

	if err := svc.UpdateUserInfo("U1", request.UpdateUserInfoRequest{Signature: "期末加油", Major: "计算机科学"}); err != nil {
		t.Fatal(err)
	}

	// 更新后缓存已失效，读到新资料；空字段保持不变
	info, err = svc.GetUserInfo("U1")
	if err != nil {
		t.Fatal(err)
	}
	if info.Signature != "期末加油" || info.Major != "计算机科学" {
		t.Fatalf("updated info = %+v", info)
	}
	if info.Nickname != "小张" {
		t.Fatalf("nickname changed unexpectedly: %s", info.Nickname)
	}

	if _, err := svc.GetUserInfo("U404"); errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("missing user: code = %d, want CodeUserNotExist", errorx.GetCode(err))
	}
}
