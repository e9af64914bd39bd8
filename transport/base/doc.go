// Package base provides the socket tuning shared by the concrete
// connector implementations. The tcp and unix packages delegate their
// UpgradeConnection logic here so buffer sizing and TCP option handling
// live in one place.
package base
