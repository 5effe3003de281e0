package restart

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "wen-restart")
