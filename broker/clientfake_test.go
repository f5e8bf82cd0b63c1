package broker_test

import (
	"context"
	"errors"

	"github.com/leadkit/igbroker/instagram"
)

// fakeClient is a scriptable protocol client. Unset hooks return zero values
// so each test scripts only the calls it cares about.
type fakeClient struct {
	loginFn            func(ctx context.Context, username, password string) error
	loginWithCodeFn    func(ctx context.Context, username, password, code string) error
	loginBySessionFn   func(ctx context.Context, sessionID string) error
	logoutFn           func(ctx context.Context) error
	accountInfoFn      func(ctx context.Context) (*instagram.Account, error)
	settingsFn         func() (instagram.Settings, error)
	applySettingsFn    func(instagram.Settings) error
	resolveChallengeFn func(ctx context.Context) error
	timelineFn         func(ctx context.Context) ([]instagram.Media, error)
	userByUsernameFn   func(ctx context.Context, username string) (*instagram.User, error)
	userIDFromNameFn   func(ctx context.Context, username string) (string, error)
	userProfileFn      func(ctx context.Context, username string) (*instagram.User, error)
	userInfoFn         func(ctx context.Context, userID string) (*instagram.User, error)
	searchUsersFn      func(ctx context.Context, query string, limit int) ([]instagram.User, error)
	searchHashtagsFn   func(ctx context.Context, query string, limit int) ([]instagram.Hashtag, error)
	searchPlacesFn     func(ctx context.Context, query string) ([]instagram.Place, error)
	followersFn        func(ctx context.Context, userID string, limit int) ([]instagram.User, error)
	followingFn        func(ctx context.Context, userID string, limit int) ([]instagram.User, error)
	followersPageFn    func(ctx context.Context, userID string, maxItems int, cursor string) ([]instagram.User, string, error)
	followingPageFn    func(ctx context.Context, userID string, maxItems int, cursor string) ([]instagram.User, string, error)
	userMediasFn       func(ctx context.Context, userID string, limit int) ([]instagram.Media, error)
	hashtagMediasFn    func(ctx context.Context, name string, limit int) ([]instagram.Media, error)
	locationMediasFn   func(ctx context.Context, locationID string, limit int) ([]instagram.Media, error)
	mediaPKFromCodeFn  func(ctx context.Context, shortcode string) (string, error)
	mediaInfoFn        func(ctx context.Context, mediaPK string) (*instagram.Media, error)
	mediaLikersFn      func(ctx context.Context, mediaPK string) ([]instagram.User, error)
	directSendFn       func(ctx context.Context, text string, userIDs []string) (*instagram.DirectThread, error)

	userID          string
	codeProvider    instagram.CodeProvider
	appliedSettings instagram.Settings
}

func newFakeClient() *fakeClient {
	return &fakeClient{codeProvider: instagram.RaiseCodeRequest}
}

// factory returns an instagram.Factory that always hands out cl, recording
// how many clients were created.
func fixedFactory(cl instagram.Client, created *int) instagram.Factory {
	return func(opts instagram.Options) instagram.Client {
		if created != nil {
			*created++
		}
		return cl
	}
}

func (f *fakeClient) Login(ctx context.Context, username, password string) error {
	if f.loginFn != nil {
		return f.loginFn(ctx, username, password)
	}
	return nil
}

func (f *fakeClient) LoginWithCode(ctx context.Context, username, password, code string) error {
	if f.loginWithCodeFn != nil {
		return f.loginWithCodeFn(ctx, username, password, code)
	}
	return nil
}

func (f *fakeClient) LoginBySessionID(ctx context.Context, sessionID string) error {
	if f.loginBySessionFn != nil {
		return f.loginBySessionFn(ctx, sessionID)
	}
	return nil
}

func (f *fakeClient) Logout(ctx context.Context) error {
	if f.logoutFn != nil {
		return f.logoutFn(ctx)
	}
	return nil
}

func (f *fakeClient) AccountInfo(ctx context.Context) (*instagram.Account, error) {
	if f.accountInfoFn != nil {
		return f.accountInfoFn(ctx)
	}
	return &instagram.Account{PK: f.userID, Username: "fake"}, nil
}

func (f *fakeClient) Settings() (instagram.Settings, error) {
	if f.settingsFn != nil {
		return f.settingsFn()
	}
	return instagram.Settings(`{}`), nil
}

func (f *fakeClient) ApplySettings(s instagram.Settings) error {
	f.appliedSettings = s
	if f.applySettingsFn != nil {
		return f.applySettingsFn(s)
	}
	return nil
}

func (f *fakeClient) UserID() string { return f.userID }

func (f *fakeClient) SetCodeProvider(p instagram.CodeProvider) { f.codeProvider = p }

func (f *fakeClient) ResolveChallengeAuto(ctx context.Context) error {
	if f.resolveChallengeFn != nil {
		return f.resolveChallengeFn(ctx)
	}
	return nil
}

func (f *fakeClient) TimelineFeed(ctx context.Context) ([]instagram.Media, error) {
	if f.timelineFn != nil {
		return f.timelineFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) UserByUsername(ctx context.Context, username string) (*instagram.User, error) {
	if f.userByUsernameFn != nil {
		return f.userByUsernameFn(ctx, username)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) UserIDFromUsername(ctx context.Context, username string) (string, error) {
	if f.userIDFromNameFn != nil {
		return f.userIDFromNameFn(ctx, username)
	}
	return "", errors.New("not scripted")
}

func (f *fakeClient) UserProfile(ctx context.Context, username string) (*instagram.User, error) {
	if f.userProfileFn != nil {
		return f.userProfileFn(ctx, username)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) UserInfo(ctx context.Context, userID string) (*instagram.User, error) {
	if f.userInfoFn != nil {
		return f.userInfoFn(ctx, userID)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) SearchUsers(ctx context.Context, query string, limit int) ([]instagram.User, error) {
	if f.searchUsersFn != nil {
		return f.searchUsersFn(ctx, query, limit)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) SearchHashtags(ctx context.Context, query string, limit int) ([]instagram.Hashtag, error) {
	if f.searchHashtagsFn != nil {
		return f.searchHashtagsFn(ctx, query, limit)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) SearchPlaces(ctx context.Context, query string) ([]instagram.Place, error) {
	if f.searchPlacesFn != nil {
		return f.searchPlacesFn(ctx, query)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) Followers(ctx context.Context, userID string, limit int) ([]instagram.User, error) {
	if f.followersFn != nil {
		return f.followersFn(ctx, userID, limit)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) Following(ctx context.Context, userID string, limit int) ([]instagram.User, error) {
	if f.followingFn != nil {
		return f.followingFn(ctx, userID, limit)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) FollowersPage(ctx context.Context, userID string, maxItems int, cursor string) ([]instagram.User, string, error) {
	if f.followersPageFn != nil {
		return f.followersPageFn(ctx, userID, maxItems, cursor)
	}
	return nil, "", errors.New("not scripted")
}

func (f *fakeClient) FollowingPage(ctx context.Context, userID string, maxItems int, cursor string) ([]instagram.User, string, error) {
	if f.followingPageFn != nil {
		return f.followingPageFn(ctx, userID, maxItems, cursor)
	}
	return nil, "", errors.New("not scripted")
}

func (f *fakeClient) UserMedias(ctx context.Context, userID string, limit int) ([]instagram.Media, error) {
	if f.userMediasFn != nil {
		return f.userMediasFn(ctx, userID, limit)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) HashtagMedias(ctx context.Context, name string, limit int) ([]instagram.Media, error) {
	if f.hashtagMediasFn != nil {
		return f.hashtagMediasFn(ctx, name, limit)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) LocationMedias(ctx context.Context, locationID string, limit int) ([]instagram.Media, error) {
	if f.locationMediasFn != nil {
		return f.locationMediasFn(ctx, locationID, limit)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) MediaPKFromCode(ctx context.Context, shortcode string) (string, error) {
	if f.mediaPKFromCodeFn != nil {
		return f.mediaPKFromCodeFn(ctx, shortcode)
	}
	return "", errors.New("not scripted")
}

func (f *fakeClient) MediaInfo(ctx context.Context, mediaPK string) (*instagram.Media, error) {
	if f.mediaInfoFn != nil {
		return f.mediaInfoFn(ctx, mediaPK)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) MediaLikers(ctx context.Context, mediaPK string) ([]instagram.User, error) {
	if f.mediaLikersFn != nil {
		return f.mediaLikersFn(ctx, mediaPK)
	}
	return nil, errors.New("not scripted")
}

func (f *fakeClient) DirectSend(ctx context.Context, text string, userIDs []string) (*instagram.DirectThread, error) {
	if f.directSendFn != nil {
		return f.directSendFn(ctx, text, userIDs)
	}
	return &instagram.DirectThread{ThreadID: "t1"}, nil
}
