package tools

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportTemplatesParsed(t *testing.T) {
	names := []string{
		"audit_logs", "subscription", "dlp_policies", "risk_assessment",
		"permission_validation", "permission_batch", "user_summary",
		"classification", "classification_batch", "classification_summary", "labeling",
	}
	for _, name := range names {
		assert.NotNil(t, reports.Lookup(name), name)
	}
}

func TestGovernance_DefaultTenant(t *testing.T) {
	backend := &fakeBackend{}
	_, isErr := callTool(t, backend, "get_dlp_policies", nil)
	require.False(t, isErr)
	assert.Equal(t, "default-tenant", backend.lastCall(t).Query["tenantId"])

	_, isErr = callTool(t, backend, "get_dlp_policies", map[string]any{"tenant_id": "contoso"})
	require.False(t, isErr)
	assert.Equal(t, "contoso", backend.lastCall(t).Query["tenantId"])
}

func TestPurviewAuditLogs(t *testing.T) {
	var logs []string
	for i := 1; i <= 7; i++ {
		logs = append(logs, fmt.Sprintf(`{"operation": "op%d", "copilotEvent": {"appName": "Teams", "isJailbreakAttempt": %t, "sensitivityLabels": ["Confidential", "HR"]}}`, i, i == 2))
	}
	backend := &fakeBackend{response: decode(t, `{"tenantId": "t1", "totalRecords": 7, "auditLogs": [`+strings.Join(logs, ",")+`]}`)}

	text, isErr := callTool(t, backend, "get_purview_audit_logs", nil)
	require.False(t, isErr)

	call := backend.lastCall(t)
	assert.Equal(t, 1000, call.Query["maxResults"])
	assert.NotContains(t, call.Query, "startTime")
	assert.NotContains(t, call.Query, "endTime")

	assert.True(t, strings.HasPrefix(text, "Microsoft Purview Audit Logs"), text)
	assert.Contains(t, text, "Total Records: 7")
	assert.Contains(t, text, "Time Range: N/A to N/A")
	assert.Contains(t, text, "📝 Event: op5")
	assert.NotContains(t, text, "op6")
	assert.Equal(t, 1, strings.Count(text, "🚨 YES"))
	assert.Contains(t, text, "Sensitivity: Confidential, HR")
}

func TestSubscribeAuditLogs_IncludesResponse(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"subscriptionId": "sub-1"}`)}

	text, isErr := callTool(t, backend, "subscribe_purview_audit_logs", map[string]any{"webhook_url": "https://hook"})
	require.False(t, isErr)

	assert.Equal(t, map[string]any{"webhookUrl": "https://hook", "tenantId": "default-tenant"}, backend.lastCall(t).Body)
	assert.Contains(t, text, "Webhook URL: https://hook")
	assert.Contains(t, text, "Response: {\n  \"subscriptionId\": \"sub-1\"\n}")
}

func TestAssessViolationRisk_ApplyActions(t *testing.T) {
	violation := map[string]any{"id": "v1", "severity": "high"}

	backend := &fakeBackend{response: decode(t, `{
		"violationId": "v1",
		"riskAssessment": {"riskLevel": "High", "riskScore": 85},
		"governanceActions": {"required": ["block", "notify"], "applied": true},
		"copilotImpact": {"accessRestricted": true}
	}`)}
	text, isErr := callTool(t, backend, "assess_dlp_violation_risk", map[string]any{"violation_data": violation})
	require.False(t, isErr)

	call := backend.lastCall(t)
	assert.Nil(t, call.Query)
	assert.Equal(t, violation, call.Body)
	assert.Contains(t, text, "- Risk Score: 85/100")
	assert.Contains(t, text, "Required: block, notify")
	assert.Contains(t, text, "Applied: Yes")
	assert.Contains(t, text, "- Access Restricted: 🚨 YES")
	assert.Contains(t, text, "- Response Filtered: ✅ No")

	_, isErr = callTool(t, backend, "assess_dlp_violation_risk", map[string]any{"violation_data": violation, "apply_actions": true})
	require.False(t, isErr)
	assert.Equal(t, map[string]any{"applyActions": true}, backend.lastCall(t).Query)
}

func TestAssessViolationRisk_RequiresObject(t *testing.T) {
	backend := &fakeBackend{}
	text, isErr := callTool(t, backend, "assess_dlp_violation_risk", map[string]any{"violation_data": "nope"})

	assert.True(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Error assessing DLP violation risk: "), text)
	assert.Empty(t, backend.calls)
}

func TestValidatePermissions_DenialReasons(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{
		"validationId": "val-1",
		"request": {"userId": "u1", "resourceId": "r1", "operation": "read", "tenantId": "default-tenant"},
		"validation": {"isAuthorized": false, "denialReasons": ["Missing role", "Label too high"]}
	}`)}

	text, isErr := callTool(t, backend, "validate_ai_permissions", map[string]any{"user_id": "u1", "resource_id": "r1"})
	require.False(t, isErr)

	body := backend.lastCall(t).Body.(map[string]any)
	assert.Equal(t, "read", body["operation"])
	assert.Equal(t, "default-tenant", body["tenantId"])

	assert.Contains(t, text, "- Authorized: 🚨 NO")
	assert.Contains(t, text, "Denial Reasons:\n- Missing role\n- Label too high\n")
	assert.Contains(t, text, "- Allow Interaction: 🚨 NO")

	backend.response = decode(t, `{"validation": {"isAuthorized": true}}`)
	text, isErr = callTool(t, backend, "validate_ai_permissions", map[string]any{"user_id": "u1", "resource_id": "r1"})
	require.False(t, isErr)
	assert.Contains(t, text, "- Authorized: ✅ YES")
	assert.NotContains(t, text, "Denial Reasons")
}

func TestValidatePermissionsBatch_FirstThreeResults(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{
		"batchId": "b1",
		"summary": {"totalRequests": 4, "authorized": 3, "denied": 1, "successRate": 75},
		"results": [
			{"userId": "u1", "isAuthorized": true},
			{"userId": "u2", "isAuthorized": true},
			{"userId": "u3", "isAuthorized": false},
			{"userId": "u4", "isAuthorized": true}
		]
	}`)}
	requests := []any{map[string]any{"user_id": "u1", "resource_id": "r1"}}

	text, isErr := callTool(t, backend, "validate_ai_permissions_batch", map[string]any{"validation_requests": requests})
	require.False(t, isErr)

	assert.Equal(t, map[string]any{"requests": requests}, backend.lastCall(t).Body)
	assert.Contains(t, text, "- Success Rate: 75%")
	assert.Contains(t, text, "User: u3")
	assert.NotContains(t, text, "User: u4")
}

func TestClassifyContent(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{
		"classificationId": "cls-1",
		"request": {"resourceId": "r1", "contentType": "application/pdf"},
		"classification": {"sensitivityLevel": "Confidential", "confidence": 0.75, "detectedSensitiveInfoTypes": ["Email", "SSN"]},
		"governance": {"actions": ["restrict"]},
		"copilotImpact": {"blockAccess": true}
	}`)}

	text, isErr := callTool(t, backend, "classify_content", map[string]any{"resource_id": "r1", "content_type": "application/pdf"})
	require.False(t, isErr)

	body := backend.lastCall(t).Body.(map[string]any)
	assert.NotContains(t, body, "contentBase64")

	assert.Contains(t, text, "- Confidence: 75%")
	assert.Contains(t, text, "Detected Sensitive Info:\n- Email\n- SSN\n")
	assert.Contains(t, text, "Governance Actions:\n- restrict\n")
	assert.Contains(t, text, "Recommended Label: None")
	assert.Contains(t, text, "- Block Access: 🚨 YES")
	assert.Contains(t, text, "- Allow Access: 🚨 NO")

	_, isErr = callTool(t, backend, "classify_content", map[string]any{"resource_id": "r1", "content_type": "image/png", "content_base64": "aGVsbG8="})
	require.False(t, isErr)
	assert.Equal(t, "aGVsbG8=", backend.lastCall(t).Body.(map[string]any)["contentBase64"])
}

func TestClassificationSummary_Days(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"period": {"days": 14}, "summary": {"totalClassifications": 12, "trends": {"highRiskTrend": "rising"}}}`)}

	text, isErr := callTool(t, backend, "get_content_classification_summary", map[string]any{"days": float64(14)})
	require.False(t, isErr)

	assert.Equal(t, 14, backend.lastCall(t).Query["days"])
	assert.Contains(t, text, "Period: 14 days")
	assert.Contains(t, text, "Total Classifications: 12")
	assert.Contains(t, text, "- High Risk Trend: rising")
	assert.Contains(t, text, "- Public: 0")
}

func TestApplySensitivityLabels(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{
		"labelingId": "lab-1",
		"results": ["skipped", {"resourceId": "r1", "success": true, "appliedLabel": "Confidential"}]
	}`)}

	text, isErr := callTool(t, backend, "apply_sensitivity_labels", map[string]any{"resource_ids": []any{"r1", "r2"}})
	require.False(t, isErr)

	body := backend.lastCall(t).Body.(map[string]any)
	assert.Equal(t, []any{"r1", "r2"}, body["resourceIds"])
	assert.Equal(t, false, body["forceReClassification"])
	assert.Equal(t, "default-tenant", body["tenantId"])

	assert.Contains(t, text, "Resource: r1\nSuccess: ✅ YES\nApplied Label: Confidential\nMethod: Unknown")
	assert.NotContains(t, text, "skipped")
}

func TestGovernance_FailurePrefix(t *testing.T) {
	backend := &fakeBackend{err: errors.New("boom")}
	text, isErr := callTool(t, backend, "classify_content", map[string]any{"resource_id": "r1", "content_type": "text/plain"})

	assert.True(t, isErr)
	assert.Equal(t, "Error classifying content: boom", text)
}
