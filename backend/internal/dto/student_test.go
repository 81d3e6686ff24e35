package dto

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

func bindJSON(t *testing.T, body string, obj any) error {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if err != nil {
		t.Fatalf("构造请求失败: %v", err)
	}
	return binding.JSON.Bind(req, obj)
}

func TestCreateStudentRequest_YearOfStudyBounds(t *testing.T) {
	const tpl = `{"name":"张三","email":"zhangsan@example.com","college_id":"123e4567-e89b-12d3-a456-426614174000","year_of_study":%d}`

	for _, year := range []int{1, 4} {
		var req CreateStudentRequest
		if err := bindJSON(t, fmt.Sprintf(tpl, year), &req); err != nil {
			t.Errorf("年级%d应通过校验: %v", year, err)
		}
	}
	for _, year := range []int{0, 5, 6} {
		var req CreateStudentRequest
		if err := bindJSON(t, fmt.Sprintf(tpl, year), &req); err == nil {
			t.Errorf("年级%d应被拒绝", year)
		}
	}
}

func TestCreateStudentRequest_YearOfStudyOptional(t *testing.T) {
	var req CreateStudentRequest
	body := `{"name":"张三","email":"zhangsan@example.com","college_id":"123e4567-e89b-12d3-a456-426614174000"}`
	if err := bindJSON(t, body, &req); err != nil {
		t.Fatalf("缺省年级应通过校验: %v", err)
	}
	if req.YearOfStudy != nil {
		t.Errorf("缺省年级应为nil，实际=%v", *req.YearOfStudy)
	}
}

func TestUpdateStudentRequest_YearOfStudyBounds(t *testing.T) {
	var req UpdateStudentRequest
	if err := bindJSON(t, `{"year_of_study":5}`, &req); err == nil {
		t.Errorf("年级5应被拒绝")
	}
	var ok UpdateStudentRequest
	if err := bindJSON(t, `{"year_of_study":4}`, &ok); err != nil {
		t.Errorf("年级4应通过校验: %v", err)
	}
}
