package osutil

const Windows = "windows"

type exitCode int

// ExitError is returned to the shell when a command fails.
const ExitError exitCode = 1

// DirPermission is applied to directories created under the data
// directory.
const DirPermission = 0o755
