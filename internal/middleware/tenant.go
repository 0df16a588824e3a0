package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quipuerp/accounting/internal/core/domain"
)

const tenantKey = contextKey("tenant")

// Header names the platform's gateway uses to convey the resolved tenant.
const (
	HeaderOrganizationID = "X-Organization-Id"
	HeaderCompanyID      = "X-Company-Id"
)

// TenantContextMiddleware resolves {organizationID, companyID} from the
// request headers. Every accounting route requires an organization; the
// company is optional (exports fall back to the placeholder tax id).
func TenantContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID, err := strconv.ParseInt(c.GetHeader(HeaderOrganizationID), 10, 64)
		if err != nil || orgID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing or invalid " + HeaderOrganizationID + " header"})
			return
		}

		tenant := domain.TenantContext{OrganizationID: orgID}
		if raw := c.GetHeader(HeaderCompanyID); raw != "" {
			companyID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || companyID <= 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + HeaderCompanyID + " header"})
				return
			}
			tenant.CompanyID = companyID
		}

		c.Set(string(tenantKey), tenant)
		c.Next()
	}
}

// GetTenantFromContext retrieves the tenant resolved by the middleware.
func GetTenantFromContext(c *gin.Context) (domain.TenantContext, bool) {
	val, exists := c.Get(string(tenantKey))
	if !exists {
		return domain.TenantContext{}, false
	}
	tenant, ok := val.(domain.TenantContext)
	return tenant, ok
}
