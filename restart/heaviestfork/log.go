package heaviestfork

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "heaviest-fork")
