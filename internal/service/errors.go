package service

import "errors"

// ErrTeamNotFound is returned when the Team service has no team for the
// referenced team ID.
var ErrTeamNotFound = errors.New("team not found")

// ErrUserNotFound is returned when the User service has no user for the
// referenced user ID.
var ErrUserNotFound = errors.New("user not found")

// ErrRoleRequired is returned when a membership is submitted without a role
// reference.
var ErrRoleRequired = errors.New("membership requires a role id")

// ErrUserNotInTeam is returned when the membership's user is neither the
// team lead nor one of the team's members.
var ErrUserNotInTeam = errors.New("user doesn't belong to team")
