package main

import (
	"context"
	"errors"

	"github.com/leadkit/igbroker/instagram"
)

// newClient is the seam where the concrete protocol driver is linked. Builds
// that ship without a driver still start and serve the persistence and
// health surface; every live platform call fails with errNoDriver.
var newClient instagram.Factory = func(opts instagram.Options) instagram.Client {
	return &noDriverClient{}
}

var errNoDriver = errors.New("instagram: no protocol driver linked into this build")

type noDriverClient struct {
	settings instagram.Settings
}

func (c *noDriverClient) Login(context.Context, string, string) error { return errNoDriver }

func (c *noDriverClient) LoginWithCode(context.Context, string, string, string) error {
	return errNoDriver
}

func (c *noDriverClient) LoginBySessionID(context.Context, string) error { return errNoDriver }

func (c *noDriverClient) Logout(context.Context) error { return errNoDriver }

func (c *noDriverClient) AccountInfo(context.Context) (*instagram.Account, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) Settings() (instagram.Settings, error) {
	if c.settings == nil {
		return instagram.Settings(`{}`), nil
	}
	return c.settings, nil
}

func (c *noDriverClient) ApplySettings(s instagram.Settings) error {
	c.settings = s
	return nil
}

func (c *noDriverClient) UserID() string { return "" }

func (c *noDriverClient) SetCodeProvider(instagram.CodeProvider) {}

func (c *noDriverClient) ResolveChallengeAuto(context.Context) error { return errNoDriver }

func (c *noDriverClient) TimelineFeed(context.Context) ([]instagram.Media, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) UserByUsername(context.Context, string) (*instagram.User, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) UserIDFromUsername(context.Context, string) (string, error) {
	return "", errNoDriver
}

func (c *noDriverClient) UserProfile(context.Context, string) (*instagram.User, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) UserInfo(context.Context, string) (*instagram.User, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) SearchUsers(context.Context, string, int) ([]instagram.User, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) SearchHashtags(context.Context, string, int) ([]instagram.Hashtag, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) SearchPlaces(context.Context, string) ([]instagram.Place, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) Followers(context.Context, string, int) ([]instagram.User, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) Following(context.Context, string, int) ([]instagram.User, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) FollowersPage(context.Context, string, int, string) ([]instagram.User, string, error) {
	return nil, "", errNoDriver
}

func (c *noDriverClient) FollowingPage(context.Context, string, int, string) ([]instagram.User, string, error) {
	return nil, "", errNoDriver
}

func (c *noDriverClient) UserMedias(context.Context, string, int) ([]instagram.Media, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) HashtagMedias(context.Context, string, int) ([]instagram.Media, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) LocationMedias(context.Context, string, int) ([]instagram.Media, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) MediaPKFromCode(context.Context, string) (string, error) {
	return "", errNoDriver
}

func (c *noDriverClient) MediaInfo(context.Context, string) (*instagram.Media, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) MediaLikers(context.Context, string) ([]instagram.User, error) {
	return nil, errNoDriver
}

func (c *noDriverClient) DirectSend(context.Context, string, []string) (*instagram.DirectThread, error) {
	return nil, errNoDriver
}
