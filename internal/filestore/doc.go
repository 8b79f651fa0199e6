// Package filestore реализует ядро хранилища: плоский каталог на диске, где каждому
// имени соответствует ровно один файл. Основные операции:
//   - Put атомарно записывает содержимое (staging-файл + rename), last write wins.
//   - List перечисляет имена, каждый раз читая каталог заново.
//   - Get/Open отдаёт содержимое целиком.
//   - Stats считает число файлов и их суммарный размер за один проход по каталогу.
//
// Незавершённые записи живут в подкаталоге .staging и вычищаются SweepStaging/StartGC.
package filestore
