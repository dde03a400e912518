package osutil

const Windows = "windows"

type exitCode int

// ExitError is the status the process exits with when a command fails.
const ExitError exitCode = 1

const DirPermission = 0o755
