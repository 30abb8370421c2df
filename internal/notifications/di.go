package notifications

import (
	cache_utils "agilcurn/internal/util/cache"
	"agilcurn/internal/util/logger"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	once sync.Once

	dispatcher         *Dispatcher
	workerService      *WorkerService
	realtimeHub        *RealtimeHub
	realtimeController *RealtimeController
)

func setUp() {
	queue := cache_utils.NewValkeyQueueService()
	log := logger.GetLogger()

	realtimeHub = NewRealtimeHub(log)

	dispatcher = &Dispatcher{
		queue:  queue,
		logger: log,
	}

	workerService = &WorkerService{
		queue:       queue,
		mailService: &MailService{},
		pushService: NewPushService(),
		hub:         realtimeHub,
		logger:      log,
	}

	realtimeController = &RealtimeController{
		hub: realtimeHub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func GetDispatcher() *Dispatcher {
	once.Do(setUp)
	return dispatcher
}

func GetWorkerService() *WorkerService {
	once.Do(setUp)
	return workerService
}

func GetRealtimeHub() *RealtimeHub {
	once.Do(setUp)
	return realtimeHub
}

func GetRealtimeController() *RealtimeController {
	once.Do(setUp)
	return realtimeController
}
