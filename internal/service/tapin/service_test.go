package tapin

import (
	"testing"

	"campus_link_server/internal/dao/mysql/repository"
	"campus_link_server/internal/model"
	"campus_link_server/internal/testfakes"
	"campus_link_server/pkg/enum/connection/connection_status_enum"
	"campus_link_server/pkg/errorx"
)

func newTestService(userIds ...string) (*tapInService, *testfakes.ConnectionRepo) {
	userRepo := testfakes.NewUserRepo()
	connRepo := testfakes.NewConnectionRepo()
	for _, id := range userIds {
		_ = userRepo.Create(&model.UserInfo{Uuid: id, Nickname: "同学" + id, Telephone: "138000000" + id[1:]})
	}
	repos := repository.NewRepositoriesFrom(userRepo, connRepo, nil, nil, nil)
	return NewTapInService(repos, testfakes.NewCache()), connRepo
}

func TestGenerateAndRedeem(t *testing.T) {
	svc, connRepo := newTestService("U1", "U2")

	gen, err := svc.Generate("U1")
	if err != nil {
		t.Fatal(err)
	}
	if gen.Token == "" || gen.ExpiresIn <= 0 {
		t.Fatalf("token = %q expiresIn = %d", gen.Token, gen.ExpiresIn)
	}

	rsp, err := svc.Redeem("U2", gen.Token)
	if err != nil {
		t.Fatal(err)
	}
	if rsp.PeerId != "U1" {
		t.Fatalf("peer = %s, want U1", rsp.PeerId)
	}
	if connRepo.Count() != 1 {
		t.Fatalf("connection rows = %d, want 1", connRepo.Count())
	}

	conn, err := connRepo.FindByPair("U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if conn.Status != connection_status_enum.ACCEPTED {
		t.Fatalf("status = %d, want accepted", conn.Status)
	}
}

// 令牌一次性：兑换成功后再次使用视为过期
func TestRedeemSingleUse(t *testing.T) {
	svc, _ := newTestService("U1", "U2", "U3")
	gen, _ := svc.Generate("U1")

	if _, err := svc.Redeem("U2", gen.Token); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Redeem("U3", gen.Token); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("second redeem: code = %d, want CodeNotFound", errorx.GetCode(err))
	}
}

func TestRedeemSelf(t *testing.T) {
	svc, _ := newTestService("U1")
	gen, _ := svc.Generate("U1")

	if _, err := svc.Redeem("U1", gen.Token); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("self redeem: code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}
}

func TestRedeemUnknownToken(t *testing.T) {
	svc, _ := newTestService("U1")

	if _, err := svc.Redeem("U1", "nope"); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("unknown token: code = %d, want CodeNotFound", errorx.GetCode(err))
	}
}

// 拉黑关系下贴卡不能建立好友
func TestRedeemBlockedPair(t *testing.T) {
	svc, connRepo := newTestService("U1", "U2")
	err := connRepo.Create(&model.Connection{
		Uuid:        "C1",
		InitiatorId: "U1",
		TargetId:    "U2",
		Status:      connection_status_enum.BLOCKED,
	})
	if err != nil {
		t.Fatal(err)
	}

	gen, _ := svc.Generate("U1")
	if _, err := svc.Redeem("U2", gen.Token); errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("blocked pair: code = %d, want CodeForbidden", errorx.GetCode(err))
	}
}

// 双方已有在途申请时，贴卡直接升级为好友
func TestRedeemUpgradesPending(t *testing.T) {
	svc, connRepo := newTestService("U1", "U2")
	_ = connRepo.Create(&model.Connection{
		Uuid:        "C1",
		InitiatorId: "U2",
		TargetId:    "U1",
		Status:      connection_status_enum.PENDING,
	})

	gen, _ := svc.Generate("U1")
	rsp, err := svc.Redeem("U2", gen.Token)
	if err != nil {
		t.Fatal(err)
	}
	if rsp.ConnectionId != "C1" {
		t.Fatalf("connection id = %s, want C1", rsp.ConnectionId)
	}
	conn, _ := connRepo.FindByPair("U1", "U2")
	if conn.Status != connection_status_enum.ACCEPTED {
		t.Fatalf("status = %d, want accepted", conn.Status)
	}
	if connRepo.Count() != 1 {
		t.Fatalf("connection rows = %d, want 1", connRepo.Count())
	}
}
