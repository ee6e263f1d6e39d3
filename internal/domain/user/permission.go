package user

type Permission string

const (
	// Self service
	PermissionViewOwnProfile    Permission = "profile.view_own"
	PermissionAttendanceRecord  Permission = "attendance.record"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionSalaryViewOwn     Permission = "salary.view_own"

	// Administration
	PermissionStaffManage       Permission = "staff.manage"
	PermissionSalaryCalculate   Permission = "salary.calculate"
	PermissionReportsView       Permission = "reports.view"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionAttendanceRecord,
		PermissionAttendanceViewOwn,
		PermissionSalaryViewOwn,
		PermissionStaffManage,
		PermissionSalaryCalculate,
		PermissionReportsView,
		PermissionAttendanceViewAll,
	},
	RoleUser: {
		PermissionViewOwnProfile,
		PermissionAttendanceRecord,
		PermissionAttendanceViewOwn,
		PermissionSalaryViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
