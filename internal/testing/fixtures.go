package testing

import "github.com/imamik/volplan/internal/plan"

// DBTierPlan returns the plan with one group "data" on /dev/sdb holding
// one linear volume "logs" mounted at /mnt/logs.
func DBTierPlan() *plan.VolumePlan {
	return NewPlanBuilder("db-tier").
		WithGroup("data", "/dev/sdb").
		WithVolume("logs", "100%FREE", "/mnt/logs").
		Build()
}

// EBSPlan returns a plan with one EBS volume backing a volume group.
func EBSPlan() *plan.VolumePlan {
	return NewPlanBuilder("cloud-tier").
		WithEBSVolume("cloud-data", 100, "/dev/sdf").
		WithGroup("cloud", "/dev/sdf").
		WithVolume("data", "100%FREE", "/mnt/cloud").
		Build()
}

// ValidCredentials are the secrets a StaticProvider needs for EBS plans.
func ValidCredentials() map[string]string {
	return map[string]string{
		"aws.volumes.access_key_id":     "AKIAEXAMPLE",
		"aws.volumes.secret_access_key": "secret",
	}
}
