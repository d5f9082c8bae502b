package persistence

// DefaultNamespace prefixes every key written by the service
const DefaultNamespace = "skillmatch"

// Entity type segments of the key contract
const (
	EntityUsers         = "users"
	EntityBilling       = "billing"
	EntityFilters       = "filters"
	EntitySettings      = "settings"
	EntityJobs          = "jobs"
	EntityRecruiterJobs = "recruiter_jobs"
	EntityApplications  = "applications"
)

// Key builds "<namespace>_<entityType>_<id>"
func Key(namespace, entity, id string) string {
	return namespace + "_" + entity + "_" + id
}

func (s *Service) key(entity, id string) string {
	return Key(s.namespace, entity, id)
}

func (s *Service) prefix(entity string) string {
	return s.namespace + "_" + entity + "_"
}
