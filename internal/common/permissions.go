package common

// File permission constants for the files gt writes
const (
	// FilePermissionNormal is used for the config store and the change log.
	// Both are meant to be human-editable and are often committed alongside the project.
	FilePermissionNormal = 0644

	// DirPermissionNormal is used when a store lives in a directory that does not exist yet
	DirPermissionNormal = 0755
)
