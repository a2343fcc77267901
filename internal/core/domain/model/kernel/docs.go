// Package kernel provides the value objects shared by every domain package of
// the scheduler service. Today that is the UUID used as job document identity.
package kernel
