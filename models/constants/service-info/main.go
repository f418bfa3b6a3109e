package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "GA4GH Beacon"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the Beacon API using Golang!"
	SERVICE_DESCRIPTION ServiceInfo = "Beacon relaying allele queries to a GA4GH variant store."
	SERVICE_API_VERSION ServiceInfo = "0.3"

	SERVICE_ARTIFACT    ServiceInfo = "beacon"
	SERVICE_VERSION     ServiceInfo = "0.1.0"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("org.ga4gh:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER

	// legacy mount point of the original python beacon
	LEGACY_PREFIX = "/beacon-python"
)
