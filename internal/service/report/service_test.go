package report

import (
	"testing"

	"campus_link_server/internal/dao/mysql/repository"
	"campus_link_server/internal/dto/request"
	"campus_link_server/internal/model"
	"campus_link_server/internal/testfakes"
	"campus_link_server/pkg/errorx"
)

func newTestService(userIds ...string) (*reportService, *testfakes.ReportRepo) {
	userRepo := testfakes.NewUserRepo()
	reportRepo := testfakes.NewReportRepo()
	for _, id := range userIds {
		_ = userRepo.Create(&model.UserInfo{Uuid: id, Nickname: "同学" + id, Telephone: "138000000" + id[1:]})
	}
	repos := repository.NewRepositoriesFrom(userRepo, nil, nil, nil, reportRepo)
	return NewReportService(repos, testfakes.NewCache()), reportRepo
}

func TestReportUser(t *testing.T) {
	svc, reportRepo := newTestService("U1", "U2")

	err := svc.ReportUser("U1", request.ReportUserRequest{TargetId: "U2", Reason: "发布不当内容"})
	if err != nil {
		t.Fatal(err)
	}
	if reportRepo.Count() != 1 {
		t.Fatalf("report rows = %d, want 1", reportRepo.Count())
	}

	// 冷却期内重复举报被限流
	err = svc.ReportUser("U1", request.ReportUserRequest{TargetId: "U2", Reason: "再次举报"})
	if errorx.GetCode(err) != errorx.CodeTooManyRequests {
		t.Fatalf("cooldown: code = %d, want CodeTooManyRequests", errorx.GetCode(err))
	}
	if reportRepo.Count() != 1 {
		t.Fatalf("report rows = %d, want 1", reportRepo.Count())
	}

	// 冷却只针对同一对用户，换个目标不受影响
	if err := svc.ReportUser("U2", request.ReportUserRequest{TargetId: "U1", Reason: "互相举报"}); err != nil {
		t.Fatal(err)
	}
}

func TestReportUserInvalid(t *testing.T) {
	svc, _ := newTestService("U1")

	if err := svc.ReportUser("U1", request.ReportUserRequest{TargetId: "U1", Reason: "自己"}); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("self report: code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}
	if err := svc.ReportUser("U1", request.ReportUserRequest{TargetId: "U9", Reason: "不存在"}); errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("unknown target: code = %d, want CodeUserNotExist", errorx.GetCode(err))
	}
}
