package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultRedirectURL     = "https://myapplications.microsoft.com"
	defaultRetentionPolicy = "90days"
	defaultRetentionDays   = 90
	defaultExportSchedule  = "daily"
	defaultExportTime      = "02:00"
	defaultInviteRetries   = 5
)

func (r *Registry) onboardingTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("validate_azure_ad_permissions",
				mcp.WithDescription("Validate Azure AD permissions for a tenant."),
				mcp.WithString("tenant_id", mcp.Required(), mcp.Description("Tenant ID")),
				mcp.WithString("azure_ad_app_id", mcp.Required(), mcp.Description("Azure AD App ID")),
				mcp.WithString("azure_ad_app_secret", mcp.Required(), mcp.Description("Azure AD App Secret")),
			),
			Category: CategoryOnboarding,
			Failure:  "Validate Azure AD permissions failed",
			Handler:  r.validateAzureAD,
		},
		{
			Definition: mcp.NewTool("test_storage_connection",
				mcp.WithDescription("Test Azure Storage connection for exports."),
				mcp.WithString("azure_storage_account_name", mcp.Required(), mcp.Description("Storage account name")),
				mcp.WithString("azure_storage_container_name", mcp.Required(), mcp.Description("Container name")),
				mcp.WithString("azure_storage_sas_token", mcp.Required(), mcp.Description("SAS token")),
			),
			Category: CategoryOnboarding,
			Failure:  "Test storage connection failed",
			Handler:  r.testStorage,
		},
		{
			Definition: mcp.NewTool("complete_onboarding",
				mcp.WithDescription("Complete the onboarding process for a tenant."),
				mcp.WithString("tenant_id", mcp.Required(), mcp.Description("Tenant ID")),
				mcp.WithString("azure_ad_app_id", mcp.Required(), mcp.Description("Azure AD App ID")),
				mcp.WithString("azure_storage_account_name", mcp.Required(), mcp.Description("Storage account name")),
				mcp.WithString("azure_storage_container_name", mcp.Required(), mcp.Description("Container name")),
				mcp.WithString("retention_policy",
					mcp.Description("Retention policy"),
					mcp.DefaultString(defaultRetentionPolicy),
				),
				mcp.WithNumber("custom_retention_days",
					mcp.Description("Custom retention days"),
					mcp.DefaultNumber(defaultRetentionDays),
				),
				mcp.WithString("export_schedule",
					mcp.Description("Export schedule"),
					mcp.DefaultString(defaultExportSchedule),
				),
				mcp.WithString("export_time",
					mcp.Description("Export time"),
					mcp.DefaultString(defaultExportTime),
				),
			),
			Category: CategoryOnboarding,
			Failure:  "Complete onboarding failed",
			Handler:  r.completeOnboarding,
		},
		{
			Definition: mcp.NewTool("send_onboarding_email",
				mcp.WithDescription("Send onboarding email to tenant admin."),
				mcp.WithString("tenant_id", mcp.Required(), mcp.Description("Tenant ID")),
				mcp.WithString("admin_email", mcp.Required(), mcp.Description("Admin email address")),
			),
			Category: CategoryOnboarding,
			Failure:  "Send onboarding email failed",
			Handler:  r.sendOnboardingEmail,
		},
		{
			Definition: mcp.NewTool("invite_user",
				mcp.WithDescription("Invite a user via HTTP endpoint."),
				mcp.WithString("tenant_id", mcp.Required(), mcp.Description("Tenant ID")),
				mcp.WithString("admin_email", mcp.Required(), mcp.Description("Admin email address")),
				mcp.WithString("redirect_url",
					mcp.Description("Redirect URL"),
					mcp.DefaultString(defaultRedirectURL),
				),
				mcp.WithString("invited_by",
					mcp.Description("Invited by"),
					mcp.DefaultString("System"),
				),
			),
			Category:     CategoryOnboarding,
			RequiresAuth: true,
			Failure:      "Invite user failed",
			Handler:      r.inviteUser,
		},
		{
			Definition: mcp.NewTool("resend_invitation",
				mcp.WithDescription("Resend an invitation to a user."),
				mcp.WithString("tenant_id", mcp.Required(), mcp.Description("Tenant ID")),
				mcp.WithString("redirect_url",
					mcp.Description("Redirect URL"),
					mcp.DefaultString(defaultRedirectURL),
				),
				mcp.WithString("requested_by",
					mcp.Description("Requested by"),
					mcp.DefaultString("Admin"),
				),
			),
			Category:     CategoryOnboarding,
			RequiresAuth: true,
			Failure:      "Resend invitation failed",
			Handler:      r.resendInvitation,
		},
	}
}

func outcome(result object, ok string) string {
	if result.flag("success") {
		return "✅ " + ok
	}
	return "❌ Failed"
}

func (r *Registry) validateAzureAD(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}
	appID, err := args.RequireString("azure_ad_app_id")
	if err != nil {
		return "", err
	}
	secret, err := args.RequireString("azure_ad_app_secret")
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"tenantId":         tenantID,
		"azureAdAppId":     appID,
		"azureAdAppSecret": secret,
	}
	result, err := r.post(ctx, "/api/onboarding/validate-azure-ad", body, nil, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Azure AD Permissions Validation**\n\n")
	fmt.Fprintf(&b, "- **Status:** %s\n", outcome(result, "Success"))
	fmt.Fprintf(&b, "- **Tenant ID:** %s\n", tenantID)
	fmt.Fprintf(&b, "- **App ID:** %s\n", appID)
	fmt.Fprintf(&b, "- **Message:** %s\n", result.str("message", "No message provided"))
	return b.String(), nil
}

func (r *Registry) testStorage(ctx context.Context, args Args) (string, error) {
	account, err := args.RequireString("azure_storage_account_name")
	if err != nil {
		return "", err
	}
	container, err := args.RequireString("azure_storage_container_name")
	if err != nil {
		return "", err
	}
	sas, err := args.RequireString("azure_storage_sas_token")
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"azureStorageAccountName":   account,
		"azureStorageContainerName": container,
		"azureStorageSasToken":      sas,
	}
	result, err := r.post(ctx, "/api/onboarding/test-storage-connection", body, nil, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Azure Storage Connection Test**\n\n")
	fmt.Fprintf(&b, "- **Status:** %s\n", outcome(result, "Success"))
	fmt.Fprintf(&b, "- **Storage Account:** %s\n", account)
	fmt.Fprintf(&b, "- **Container:** %s\n", container)
	fmt.Fprintf(&b, "- **Message:** %s\n", result.str("message", "No message provided"))
	return b.String(), nil
}

func (r *Registry) completeOnboarding(ctx context.Context, args Args) (string, error) {
	required := make(map[string]string)
	for _, key := range []string{"tenant_id", "azure_ad_app_id", "azure_storage_account_name", "azure_storage_container_name"} {
		v, err := args.RequireString(key)
		if err != nil {
			return "", err
		}
		required[key] = v
	}
	retentionDays, err := args.Int("custom_retention_days", defaultRetentionDays)
	if err != nil {
		return "", err
	}

	retention := args.String("retention_policy", defaultRetentionPolicy)
	schedule := args.String("export_schedule", defaultExportSchedule)
	exportTime := args.String("export_time", defaultExportTime)

	body := map[string]any{
		"tenantId":                  required["tenant_id"],
		"azureAdAppId":              required["azure_ad_app_id"],
		"azureStorageAccountName":   required["azure_storage_account_name"],
		"azureStorageContainerName": required["azure_storage_container_name"],
		"retentionPolicy":           retention,
		"customRetentionDays":       retentionDays,
		"exportSchedule":            schedule,
		"exportTime":                exportTime,
	}
	result, err := r.post(ctx, "/api/onboarding/complete", body, nil, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Onboarding Completion**\n\n")
	fmt.Fprintf(&b, "- **Status:** %s\n", outcome(result, "Success"))
	fmt.Fprintf(&b, "- **Tenant ID:** %s\n", required["tenant_id"])
	fmt.Fprintf(&b, "- **Message:** %s\n\n", result.str("message", "No message provided"))

	b.WriteString("**Configuration Applied:**\n")
	fmt.Fprintf(&b, "- Azure AD App ID: %s\n", required["azure_ad_app_id"])
	fmt.Fprintf(&b, "- Storage Account: %s\n", required["azure_storage_account_name"])
	fmt.Fprintf(&b, "- Container: %s\n", required["azure_storage_container_name"])
	fmt.Fprintf(&b, "- Retention Policy: %s\n", retention)
	fmt.Fprintf(&b, "- Export Schedule: %s at %s\n", schedule, exportTime)
	return b.String(), nil
}

func (r *Registry) sendOnboardingEmail(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}
	email, err := args.RequireString("admin_email")
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"tenantId":   tenantID,
		"adminEmail": email,
	}
	result, err := r.post(ctx, "/api/onboarding/send-email", body, nil, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Onboarding Email**\n\n")
	fmt.Fprintf(&b, "- **Status:** %s\n", outcome(result, "Sent"))
	fmt.Fprintf(&b, "- **Tenant ID:** %s\n", tenantID)
	fmt.Fprintf(&b, "- **Admin Email:** %s\n", email)
	fmt.Fprintf(&b, "- **Message:** %s\n", result.str("message", "No message provided"))
	return b.String(), nil
}

func (r *Registry) inviteUser(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}
	email, err := args.RequireString("admin_email")
	if err != nil {
		return "", err
	}
	redirectURL := args.String("redirect_url", defaultRedirectURL)
	invitedBy := args.String("invited_by", "System")

	body := map[string]any{
		"tenantId":    tenantID,
		"adminEmail":  email,
		"redirectUrl": redirectURL,
		"invitedBy":   invitedBy,
	}
	result, err := r.post(ctx, "/api/invite/user", body, nil, true)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**User Invitation**\n\n")
	fmt.Fprintf(&b, "- **Status:** %s\n", outcome(result, "Success"))
	fmt.Fprintf(&b, "- **State:** %s\n", result.str("state", "Unknown"))
	fmt.Fprintf(&b, "- **Tenant ID:** %s\n", tenantID)
	fmt.Fprintf(&b, "- **Admin Email:** %s\n", email)
	fmt.Fprintf(&b, "- **Redirect URL:** %s\n", redirectURL)
	fmt.Fprintf(&b, "- **Invited By:** %s\n", invitedBy)
	if result.flag("inviteId") {
		fmt.Fprintf(&b, "- **Invitation ID:** %s\n", result.str("inviteId", ""))
	}
	if result.flag("userId") {
		fmt.Fprintf(&b, "- **User ID:** %s\n", result.str("userId", ""))
	}
	if result.flag("error") {
		fmt.Fprintf(&b, "- **Error:** %s\n", result.str("error", ""))
	}
	return b.String(), nil
}

func (r *Registry) resendInvitation(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}
	redirectURL := args.String("redirect_url", defaultRedirectURL)
	requestedBy := args.String("requested_by", "Admin")

	body := map[string]any{
		"tenantId":    tenantID,
		"redirectUrl": redirectURL,
		"requestedBy": requestedBy,
	}
	result, err := r.post(ctx, "/api/invite/resend", body, nil, true)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Resend Invitation**\n\n")
	fmt.Fprintf(&b, "- **Status:** %s\n", outcome(result, "Success"))
	fmt.Fprintf(&b, "- **State:** %s\n", result.str("state", "Unknown"))
	fmt.Fprintf(&b, "- **Tenant ID:** %s\n", tenantID)
	fmt.Fprintf(&b, "- **Redirect URL:** %s\n", redirectURL)
	fmt.Fprintf(&b, "- **Requested By:** %s\n", requestedBy)
	fmt.Fprintf(&b, "- **Retry Count:** %s/%s\n", result.num("retryCount"), result.str("maxRetries", fmt.Sprint(defaultInviteRetries)))
	fmt.Fprintf(&b, "- **Message:** %s\n", result.str("message", "No message provided"))
	return b.String(), nil
}
